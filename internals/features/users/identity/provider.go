package identity

import (
	"context"
	"fmt"
)

// Provider adalah identity provider eksternal yang menyimpan akun &
// kredensial. Semua mutasi user lokal harus dicerminkan ke sini lebih dulu
// (lihat Service untuk urutan kompensasinya).
type Provider interface {
	CreateAccount(ctx context.Context, in NewAccount) (providerID string, err error)
	UpdateAccount(ctx context.Context, providerID string, in UpdateAccount) error
	DeleteAccount(ctx context.Context, providerID string) error

	// FindAccountIDByEmail: "" tanpa error kalau akun tidak ada.
	FindAccountIDByEmail(ctx context.Context, email string) (string, error)
}

type NewAccount struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type UpdateAccount struct {
	Username  string
	FirstName string
	LastName  string
}

// ProviderError membawa status upstream supaya controller bisa meneruskan
// pesan provider (mis. password terlalu lemah) tanpa menebak-nebak.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: status %d: %s", e.Status, e.Message)
}
