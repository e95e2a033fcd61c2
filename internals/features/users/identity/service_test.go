package identity

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	quizModel "sekolahku_backend/internals/features/school/quizzes/model"
	subModel "sekolahku_backend/internals/features/school/submissions/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

type fakeProvider struct {
	nextID   int
	accounts map[string]string // providerID -> email
	deleted  []string
	failOn   string // "create" | "update" | "delete"
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]string{}}
}

func (f *fakeProvider) CreateAccount(_ context.Context, in NewAccount) (string, error) {
	if f.failOn == "create" {
		return "", &ProviderError{Status: 422, Message: "password terlalu lemah"}
	}
	f.nextID++
	id := string(rune('a' + f.nextID))
	f.accounts[id] = in.Email
	return id, nil
}

func (f *fakeProvider) UpdateAccount(_ context.Context, id string, _ UpdateAccount) error {
	if f.failOn == "update" {
		return &ProviderError{Status: 500, Message: "upstream down"}
	}
	return nil
}

func (f *fakeProvider) DeleteAccount(_ context.Context, id string) error {
	if f.failOn == "delete" {
		return &ProviderError{Status: 500, Message: "upstream down"}
	}
	delete(f.accounts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProvider) FindAccountIDByEmail(_ context.Context, email string) (string, error) {
	for id, em := range f.accounts {
		if em == email {
			return id, nil
		}
	}
	return "", nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&classModel.KelasModel{},
		&classModel.EnrollmentModel{},
		&subModel.SubmissionModel{},
		&quizModel.QuizSubmissionModel{},
	))
	return db
}

func TestCreateUser_SiswaWithKelas(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	svc := NewService(db, prov)

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Budi Santoso", Email: "budi@sekolah.id", Username: "budi",
		Password: "rahasia123", Role: "siswa", KelasCid: "kelas-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "siswa", u.UserRole)

	var enr []classModel.EnrollmentModel
	require.NoError(t, db.Find(&enr).Error)
	require.Len(t, enr, 1)
	assert.Equal(t, "kelas-1", enr[0].EnrollmentKelasCid)
	assert.Equal(t, "budi@sekolah.id", enr[0].EnrollmentStudentEmail)
}

func TestCreateUser_CompensatesOnLocalConflict(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	svc := NewService(db, prov)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Budi", Email: "budi@sekolah.id", Username: "budi",
		Password: "rahasia123", Role: "siswa",
	})
	require.NoError(t, err)

	// Email sama lagi → insert lokal bentrok → akun provider kedua harus
	// dihapus (kompensasi), tanpa baris lokal baru.
	_, err = svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Budi Palsu", Email: "budi@sekolah.id", Username: "budi2",
		Password: "rahasia123", Role: "siswa",
	})
	require.Error(t, err)
	assert.Len(t, prov.deleted, 1)

	var count int64
	db.Model(&userModel.UserModel{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateUser_ProviderFailureWritesNothing(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	prov.failOn = "create"
	svc := NewService(db, prov)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Budi", Email: "budi@sekolah.id", Username: "budi",
		Password: "x", Role: "siswa",
	})
	require.Error(t, err)

	var count int64
	db.Model(&userModel.UserModel{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, newFakeProvider())

	_, err := svc.UpdateUser(context.Background(), UpdateUserInput{ID: 99, Name: "X", Username: "x", Role: "guru"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_ReplacesEnrollment(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	svc := NewService(db, prov)

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Siti", Email: "siti@sekolah.id", Username: "siti",
		Password: "rahasia123", Role: "siswa", KelasCid: "kelas-1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), UpdateUserInput{
		ID: u.UserID, Name: "Siti Aminah", Username: "siti", Role: "siswa", KelasCid: "kelas-2",
	})
	require.NoError(t, err)

	var enr []classModel.EnrollmentModel
	require.NoError(t, db.Find(&enr).Error)
	require.Len(t, enr, 1)
	assert.Equal(t, "kelas-2", enr[0].EnrollmentKelasCid)
}

func TestUpdateUser_RoleChangeDropsEnrollment(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	svc := NewService(db, prov)

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Siti", Email: "siti@sekolah.id", Username: "siti",
		Password: "rahasia123", Role: "siswa", KelasCid: "kelas-1",
	})
	require.NoError(t, err)

	// naik jadi guru tanpa kelas_cid: enrollment lama harus ikut hilang
	_, err = svc.UpdateUser(context.Background(), UpdateUserInput{
		ID: u.UserID, Name: "Siti", Username: "siti", Role: "guru",
	})
	require.NoError(t, err)

	var enrs int64
	db.Model(&classModel.EnrollmentModel{}).Count(&enrs)
	assert.EqualValues(t, 0, enrs)
}

func TestDeleteUser_CascadesLocalRows(t *testing.T) {
	db := openTestDB(t)
	prov := newFakeProvider()
	svc := NewService(db, prov)

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Budi", Email: "budi@sekolah.id", Username: "budi",
		Password: "rahasia123", Role: "siswa", KelasCid: "kelas-1",
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&subModel.SubmissionModel{
		SubmissionTaskID: 1, SubmissionStudentEmail: u.UserEmail, SubmissionFileURL: "http://f",
	}).Error)

	require.NoError(t, svc.DeleteUser(context.Background(), u.UserID))

	var users, enrs, subs int64
	db.Model(&userModel.UserModel{}).Count(&users)
	db.Model(&classModel.EnrollmentModel{}).Count(&enrs)
	db.Model(&subModel.SubmissionModel{}).Count(&subs)
	assert.EqualValues(t, 0, users)
	assert.EqualValues(t, 0, enrs)
	assert.EqualValues(t, 0, subs)
	assert.Len(t, prov.deleted, 1)
}

func TestResolveUser_MissingRowIsNotError(t *testing.T) {
	db := openTestDB(t)

	u, err := ResolveUser(db, "ghost@sekolah.id")
	require.NoError(t, err)
	assert.Nil(t, u)

	role, err := ResolveRole(db, "ghost@sekolah.id")
	require.NoError(t, err)
	assert.Empty(t, string(role))
}
