package models

// AccountRequest is the admin create/update body for live and historic rows.
// Optional fields left out keep the stored value on update.
// @Description Admin account body
type AccountRequest struct {
	TgID         string  `json:"tgId" binding:"required,min=2" example:"123456789"`
	Username     string  `json:"username" binding:"required,min=2" example:"johndoe"`
	Nickname     string  `json:"nickname" binding:"required,min=2" example:"John Doe"`
	PhoneNumber  string  `json:"phoneNumber" binding:"required,min=2" example:"+8613800000000"`
	AccountBio   string  `json:"accountBio" binding:"required,min=2" example:"bio"`
	AccountType  string  `json:"accountType" binding:"required,min=2" example:"正常号"`
	IsPremium    *bool   `json:"isPremium" binding:"required" example:"false"`
	ServerIP     *string `json:"serverIp,omitempty" example:"10.0.0.1"`
	ProfileURL   *string `json:"profileUrl,omitempty"`
	ProfileCount *int    `json:"profileCount,omitempty" binding:"omitempty,min=0"`
}

// Apply merges the request over base.
func (r AccountRequest) Apply(base Snapshot) Snapshot {
	s := base
	s.TgID = r.TgID
	s.Username = r.Username
	s.Nickname = r.Nickname
	s.PhoneNumber = r.PhoneNumber
	s.AccountBio = r.AccountBio
	s.AccountType = r.AccountType
	if r.IsPremium != nil {
		s.IsPremium = *r.IsPremium
	}
	if r.ServerIP != nil {
		s.ServerIP = *r.ServerIP
	}
	if r.ProfileURL != nil {
		s.ProfileURL = *r.ProfileURL
	}
	if r.ProfileCount != nil {
		s.ProfileCount = *r.ProfileCount
	}
	return s
}

// MiniAppRequest is the body posted by the mini-app. Phone and bio come from
// the pending contact entry, not from the client.
// @Description Mini-app check-in body
type MiniAppRequest struct {
	TgID         string `json:"tgId" binding:"required" example:"123456789"`
	Username     string `json:"username" example:"johndoe"`
	Nickname     string `json:"nickname" example:"John Doe"`
	AccountType  string `json:"accountType" binding:"required" example:"正常号"`
	IsPremium    *bool  `json:"isPremium" binding:"required" example:"false"`
	ServerIP     string `json:"serverIp,omitempty"`
	ProfileURL   string `json:"profileUrl,omitempty"`
	ProfileCount int    `json:"profileCount,omitempty" binding:"omitempty,min=0"`
}

func (r MiniAppRequest) Snapshot(phone, bio string) Snapshot {
	s := Snapshot{
		TgID:         r.TgID,
		Username:     r.Username,
		Nickname:     r.Nickname,
		PhoneNumber:  phone,
		ServerIP:     r.ServerIP,
		AccountBio:   bio,
		AccountType:  r.AccountType,
		ProfileURL:   r.ProfileURL,
		ProfileCount: r.ProfileCount,
	}
	if r.IsPremium != nil {
		s.IsPremium = *r.IsPremium
	}
	return s.WithDefaults()
}

// ItemResponse wraps a single row.
type ItemResponse struct {
	Message string   `json:"message" example:"成功"`
	Data    *Account `json:"data"`
}

// MiniAppResponse is the mini-app envelope.
type MiniAppResponse struct {
	StatusCode int      `json:"statusCode" example:"201"`
	Message    string   `json:"message" example:"Telegram account created successfully"`
	Data       *Account `json:"data"`
}
