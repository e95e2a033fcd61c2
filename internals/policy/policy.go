// Satu-satunya sumber keputusan role → aksi. Semua controller konsultasi ke
// sini, tidak ada pengecekan role inline yang duplikat per route.
package policy

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuru  Role = "guru"
	RoleSiswa Role = "siswa"

	// RoleNone: email tidak ditemukan di tabel users (caller tak dikenal).
	RoleNone Role = ""
)

type Action string

const (
	ActionManageUsers          Action = "manage_users"
	ActionWriteKelas           Action = "write_kelas"
	ActionWriteMateri          Action = "write_materi"
	ActionWriteTask            Action = "write_task"
	ActionGenerateQuiz         Action = "generate_quiz"
	ActionGradeSubmission      Action = "grade_submission"
	ActionSubmitTask           Action = "submit_task"
	ActionSubmitQuiz           Action = "submit_quiz"
	ActionViewOwnSubmissions   Action = "view_own_submissions"
	ActionViewClassSubmissions Action = "view_class_submissions"
)

var allowed = map[Action][]Role{
	ActionManageUsers:          {RoleAdmin},
	ActionWriteKelas:           {RoleGuru, RoleAdmin},
	ActionWriteMateri:          {RoleGuru, RoleAdmin},
	ActionWriteTask:            {RoleGuru, RoleAdmin},
	ActionGenerateQuiz:         {RoleGuru, RoleAdmin},
	ActionGradeSubmission:      {RoleGuru, RoleAdmin},
	ActionSubmitTask:           {RoleSiswa},
	ActionSubmitQuiz:           {RoleSiswa},
	ActionViewOwnSubmissions:   {RoleSiswa},
	ActionViewClassSubmissions: {RoleGuru, RoleAdmin},
}

// CanPerform murni lookup; role tak dikenal selalu ditolak.
func CanPerform(role Role, action Action) bool {
	for _, r := range allowed[action] {
		if r == role {
			return true
		}
	}
	return false
}

func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "guru":
		return RoleGuru
	case "siswa":
		return RoleSiswa
	default:
		return RoleNone
	}
}
