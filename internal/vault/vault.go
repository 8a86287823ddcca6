// Package vault is the durable client storage for the portal: one SQLite
// file holding the single current bearer token (sealed at rest) and the
// last known user snapshot. The token lives under one fixed slot name;
// earlier revisions of the app disagreed on the key name, this package is
// the single source of truth now.
package vault

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"golang.org/x/crypto/nacl/secretbox"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Slot names. tokenSlot is the fixed key every token read/write uses.
const (
	tokenSlot = "token"
	userSlot  = "user"
)

const nonceSize = 24

type credential struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (credential) TableName() string { return "credentials" }

// Vault is the durable storage slot shared by every outbound request and
// by login/refresh/logout. Individual reads and writes are atomic at the
// database level; there is no cross-call transaction, so concurrent
// refreshes are last-write-wins.
type Vault struct {
	db  *gorm.DB
	key [32]byte
}

// Open opens (creating if needed) the vault database at path and loads or
// generates the sealing key at keyPath.
func Open(path, keyPath string) (*Vault, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open vault database: %w", err)
	}

	if err := db.AutoMigrate(&credential{}); err != nil {
		return nil, fmt.Errorf("migrate vault schema: %w", err)
	}

	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}

	return &Vault{db: db, key: key}, nil
}

// loadOrCreateKey reads the 32-byte sealing key, generating one with 0600
// permissions on first run.
func loadOrCreateKey(path string) ([32]byte, error) {
	var key [32]byte

	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != len(key) {
			return key, fmt.Errorf("vault key file %s has wrong size %d", path, len(data))
		}
		copy(key[:], data)
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return key, fmt.Errorf("read vault key: %w", err)
	}

	if _, err := rand.Read(key[:]); err != nil {
		return key, fmt.Errorf("generate vault key: %w", err)
	}
	if err := os.WriteFile(path, key[:], 0o600); err != nil {
		return key, fmt.Errorf("write vault key: %w", err)
	}
	return key, nil
}

func (v *Vault) seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &v.key), nil
}

func (v *Vault) open(sealed []byte) ([]byte, bool) {
	if len(sealed) < nonceSize {
		return nil, false
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	return secretbox.Open(nil, sealed[nonceSize:], &nonce, &v.key)
}

// Token returns the stored bearer token, or "" when none is stored or the
// stored value cannot be unsealed (treated as logged out).
func (v *Vault) Token() string {
	var row credential
	err := v.db.First(&row, "name = ?", tokenSlot).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[vault] read token: %v", err)
		}
		return ""
	}

	plaintext, ok := v.open(row.Value)
	if !ok {
		log.Printf("[vault] stored token failed to unseal, ignoring")
		return ""
	}
	return string(plaintext)
}

// SetToken seals and stores token as the single current token.
func (v *Vault) SetToken(token string) error {
	sealed, err := v.seal([]byte(token))
	if err != nil {
		return err
	}

	row := credential{Name: tokenSlot, Value: sealed, UpdatedAt: time.Now()}
	if err := v.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// ClearToken removes the stored token. Clearing an empty vault is fine.
func (v *Vault) ClearToken() error {
	if err := v.db.Delete(&credential{}, "name = ?", tokenSlot).Error; err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// SaveUser stores the last known user snapshot alongside the token.
func (v *Vault) SaveUser(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	row := credential{Name: userSlot, Value: data, UpdatedAt: time.Now()}
	if err := v.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// CachedUser returns the last stored user snapshot, if any.
func (v *Vault) CachedUser() (models.User, bool) {
	var row credential
	if err := v.db.First(&row, "name = ?", userSlot).Error; err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(row.Value, &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

// ClearUser removes the stored user snapshot.
func (v *Vault) ClearUser() error {
	if err := v.db.Delete(&credential{}, "name = ?", userSlot).Error; err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
