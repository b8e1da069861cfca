package models

import "time"

// User roles. SuperAdmin additionally manages other user accounts.
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
)

// Equipment condition values.
const (
	ConditionWorking    = "Working"
	ConditionNotWorking = "Not Working"
)

// User owns sites and equipment. UserName and Email are stored lowercased
// so the unique indexes behave case-insensitively.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserType     string    `gorm:"size:50;not null" json:"user_type"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	UserName     string    `gorm:"size:100;uniqueIndex;not null" json:"user_name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Sites     []Site      `gorm:"foreignKey:UserID" json:"sites,omitempty"`
	Equipment []Equipment `gorm:"foreignKey:UserID" json:"equipment,omitempty"`
}

func (u User) FullName() string { return u.FirstName + " " + u.LastName }

type Site struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Assignments []RegisteredEquipment `gorm:"foreignKey:SiteID" json:"-"`
}

type Equipment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SerialNumber string    `gorm:"size:100;uniqueIndex;not null" json:"serial_number"`
	Description  string    `gorm:"size:500;not null" json:"description"`
	Condition    string    `gorm:"size:50;not null" json:"condition"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipment" }

// RegisteredEquipment links one equipment record to one site. The unique
// index on EquipmentID caps assignments per equipment at one; the composite
// index is defense in depth. The store removes dependent rows itself when a
// user, site, or equipment record is deleted, so no FK cascade here.
type RegisteredEquipment struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EquipmentID    uint      `gorm:"uniqueIndex;uniqueIndex:idx_equipment_site,priority:1;not null" json:"equipment_id"`
	SiteID         uint      `gorm:"index;uniqueIndex:idx_equipment_site,priority:2;not null" json:"site_id"`
	RegisteredDate time.Time `json:"registered_date"`
}

func (RegisteredEquipment) TableName() string { return "registered_equipment" }

// Session backs a bearer token. Logout sets RevokedAt.
type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
