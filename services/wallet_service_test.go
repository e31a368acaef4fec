package services

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorkkoech/i-verse-hub/models"
)

func TestProvisionCreatesWalletAndDefaultToken(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWalletService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "wallets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "wallets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wallet, err := svc.Provision("user-1", models.ChainEthereum)
	require.NoError(t, err)

	assert.True(t, wallet.IsPrimary, "first wallet must be primary")
	assert.Equal(t, models.ChainEthereum, wallet.Chain)
	assert.Regexp(t, `^0x[0-9a-f]{40}$`, wallet.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionTRONAddressShape(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWalletService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "wallets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "wallets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wallet, err := svc.Provision("user-1", models.ChainTRON)
	require.NoError(t, err)

	assert.False(t, wallet.IsPrimary, "second wallet must not be primary")
	assert.Regexp(t, `^T[0-9a-f]{33}$`, wallet.Address)
}

func TestProvisionUnknownChainSkipsDefaultToken(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWalletService(db)

	// no token insert expected for a chain without a default token definition
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "wallets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "wallets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wallet, err := svc.Provision("user-1", "Polygon")
	require.NoError(t, err)

	assert.Regexp(t, `^0x[0-9a-f]{40}$`, wallet.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvisionRaceReturnsExistingWallet(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWalletService(db)

	// the insert hits the (user_id, chain) unique index: zero rows affected,
	// so the winner's row is fetched instead of creating a duplicate
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "wallets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "wallets"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "wallets"`).
		WillReturnRows(walletRows("wal-existing", "user-1"))
	mock.ExpectCommit()

	wallet, err := svc.Provision("user-1", models.ChainEthereum)
	require.NoError(t, err)

	assert.Equal(t, "wal-existing", wallet.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWalletReturnsExistingWithoutProvisioning(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWalletService(db)

	mock.ExpectQuery(`SELECT \* FROM "wallets"`).
		WillReturnRows(walletRows("wal-1", "user-1"))

	app := newTestApp("user-1")
	app.Post("/wallets", svc.CreateWallet)

	body, _ := json.Marshal(map[string]string{"chain": models.ChainEthereum})
	req := httptest.NewRequest("POST", "/wallets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Wallet models.Wallet `json:"wallet"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "wal-1", out.Wallet.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
