package checkin

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/checkin/pending"
)

// Profile is what the platform tells us about the user at event time.
type Profile struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	// Bio is empty when the user has none or it could not be fetched.
	Bio string
}

func profileOf(u *tgbotapi.User) Profile {
	if u == nil {
		return Profile{}
	}
	return Profile{UserID: u.ID, Username: u.UserName, FirstName: u.FirstName, LastName: u.LastName}
}

func (p Profile) TgID() string {
	return strconv.FormatInt(p.UserID, 10)
}

func (p Profile) Nickname() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PlainCandidate refreshes the platform-owned fields of an existing row.
func PlainCandidate(existing models.Snapshot, p Profile) models.Snapshot {
	c := existing
	c.IsPremium = false
	c.Nickname = p.Nickname()
	if p.Bio != "" {
		c.AccountBio = p.Bio
	}
	if p.Username != "" {
		c.Username = p.Username
	}
	return c
}

// SelectionCandidate builds the row for a type selection. contact and live may
// be nil. Without a pending contact the live row's phone is kept.
func SelectionCandidate(label string, p Profile, contact *pending.Contact, live *models.Account) models.Snapshot {
	c := models.Snapshot{
		TgID:         p.TgID(),
		Username:     p.Username,
		Nickname:     p.Nickname(),
		PhoneNumber:  models.Blank,
		ServerIP:     models.Blank,
		AccountBio:   models.Blank,
		AccountType:  label,
		IsPremium:    false,
		ProfileURL:   models.Blank,
		ProfileCount: 0,
	}
	if p.Bio != "" {
		c.AccountBio = p.Bio
	}
	switch {
	case contact != nil && contact.PhoneNumber != "":
		c.PhoneNumber = contact.PhoneNumber
	case live != nil && live.PhoneNumber != "":
		c.PhoneNumber = live.PhoneNumber
	}
	return c
}

type Decision int

const (
	DecisionUnchanged Decision = iota
	DecisionInsert
	DecisionUpdate
)

func (d Decision) String() string {
	switch d {
	case DecisionInsert:
		return "insert"
	case DecisionUpdate:
		return "update"
	default:
		return "unchanged"
	}
}

// Decide compares the candidate with the live row, nil when there is none.
func Decide(live *models.Account, candidate models.Snapshot) Decision {
	switch {
	case live == nil:
		return DecisionInsert
	case live.Snapshot.Equal(candidate):
		return DecisionUnchanged
	default:
		return DecisionUpdate
	}
}
