package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ActiveFlag is a boolean stored as "Y"/"N" in the is_active column.
type ActiveFlag bool

const (
	Active   ActiveFlag = true
	Inactive ActiveFlag = false
)

// Value implements driver.Valuer.
func (f ActiveFlag) Value() (driver.Value, error) {
	if f {
		return "Y", nil
	}
	return "N", nil
}

// Scan implements sql.Scanner.
func (f *ActiveFlag) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*f = Inactive
		return nil
	default:
		return fmt.Errorf("unsupported is_active value of type %T", src)
	}

	switch s {
	case "Y":
		*f = Active
	case "N":
		*f = Inactive
	default:
		return fmt.Errorf("invalid is_active value %q", s)
	}
	return nil
}

type User struct {
	ID        uint64     `gorm:"primaryKey;column:user_id" json:"userId"`
	Username  string     `gorm:"type:varchar(50);uniqueIndex:uk_users_username;not null" json:"username"`
	FullName  string     `gorm:"column:full_name;type:varchar(100);not null" json:"fullName"`
	Email     string     `gorm:"type:varchar(100);uniqueIndex:uk_users_email;not null" json:"email"`
	Active    ActiveFlag `gorm:"column:is_active;type:varchar(1);not null;index:idx_users_is_active" json:"active"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the user has not been soft-deleted.
func (u *User) IsActive() bool {
	return bool(u.Active)
}
