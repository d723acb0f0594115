package schema

import (
	"time"
)

// User represents the users table - a wallet identity, created lazily on the
// first observed interaction (contract owner/deployer or transfer participant).
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WalletAddress is the user's wallet address
	WalletAddress string `gorm:"column:wallet_address;not null;type:text;uniqueIndex:idx_users_wallet_address"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
