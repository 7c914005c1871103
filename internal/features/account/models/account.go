package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blank is the placeholder for fields the bot cannot know.
const Blank = "空白"

// Snapshot is the business field set of an account. Two snapshots are the
// same check-in iff they are ==.
// @Description Account business fields
type Snapshot struct {
	TgID         string `bson:"tgId" json:"tgId" example:"123456789"`
	Username     string `bson:"username" json:"username" example:"johndoe"`
	Nickname     string `bson:"nickname" json:"nickname" example:"John Doe"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber" example:"+8613800000000"`
	ServerIP     string `bson:"serverIp" json:"serverIp" example:"空白"`
	AccountBio   string `bson:"accountBio" json:"accountBio" example:"No bio available"`
	AccountType  string `bson:"accountType" json:"accountType" example:"正常号"`
	IsPremium    bool   `bson:"isPremium" json:"isPremium" example:"false"`
	ProfileURL   string `bson:"profileUrl" json:"profileUrl" example:"空白"`
	ProfileCount int    `bson:"profileCount" json:"profileCount" example:"0"`
}

// Account is a stored live or historic row.
// @Description Stored account row
type Account struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id" swaggertype:"string" example:"65a1b2c3d4e5f60718293a4b"`

	Snapshot `bson:",inline"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt" example:"2024-03-15T14:30:00Z"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt" example:"2024-03-15T14:30:00Z"`
}

func (s Snapshot) Equal(other Snapshot) bool {
	return s == other
}

// WithDefaults fills the optional text fields left empty.
func (s Snapshot) WithDefaults() Snapshot {
	if s.ServerIP == "" {
		s.ServerIP = Blank
	}
	if s.ProfileURL == "" {
		s.ProfileURL = Blank
	}
	return s
}

// ChangedFields lists the json names of the fields that differ.
func ChangedFields(a, b Snapshot) []string {
	var changed []string
	add := func(differs bool, name string) {
		if differs {
			changed = append(changed, name)
		}
	}
	add(a.TgID != b.TgID, "tgId")
	add(a.Username != b.Username, "username")
	add(a.Nickname != b.Nickname, "nickname")
	add(a.PhoneNumber != b.PhoneNumber, "phoneNumber")
	add(a.ServerIP != b.ServerIP, "serverIp")
	add(a.AccountBio != b.AccountBio, "accountBio")
	add(a.AccountType != b.AccountType, "accountType")
	add(a.IsPremium != b.IsPremium, "isPremium")
	add(a.ProfileURL != b.ProfileURL, "profileUrl")
	add(a.ProfileCount != b.ProfileCount, "profileCount")
	return changed
}
