package model

// swagger:model Family
type Family struct {
	UUIDBase
	Name    string         `gorm:"size:100;not null" json:"name"`
	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}

func (Family) TableName() string {
	return "families"
}

type FamilyMember struct {
	BaseModel
	FamilyID string `gorm:"uniqueIndex:idx_family_user;type:varchar(36);not null" json:"familyId"`
	UserID   uint   `gorm:"uniqueIndex:idx_family_user;not null" json:"userId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (FamilyMember) TableName() string {
	return "family_members"
}
