package user

// User is a registered player account. IMID is the account's identity
// on the instant-messaging platform that drives registration.
type User struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;unique;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	IMID         int64  `gorm:"column:im_id;uniqueIndex;not null"`
	Uploads      int    `gorm:"column:uploads;default:0"`
	IsAdmin      bool   `gorm:"column:is_admin;default:false"`
	IsMod        bool   `gorm:"column:is_mod;default:false"`
	IsBooster    bool   `gorm:"column:is_booster;default:false"`
	IsValid      bool   `gorm:"column:is_valid;default:true"`
	IsBanned     bool   `gorm:"column:is_banned;default:false"`
}

func (User) TableName() string {
	return "users"
}

// LoginProfile is the standard-client login response
type LoginProfile struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	Mod      bool   `json:"mod"`
	Booster  bool   `json:"booster"`
	Goomba   bool   `json:"goomba"`
	Alias    string `json:"alias"`
	ID       string `json:"id"`
	Uploads  int    `json:"uploads"`
	Mobile   bool   `json:"mobile"`
	AuthCode string `json:"auth_code"`
}

// LegacyLoginProfile is the login response shape expected by legacy
// game client builds.
type LegacyLoginProfile struct {
	Alias    string `json:"alias"`
	ID       int64  `json:"id"`
	AuthCode string `json:"auth_code"`
	Goomba   bool   `json:"goomba"`
	IP       string `json:"ip"`
}

// Info is the public view of an account
type Info struct {
	Username  string `json:"username"`
	IMID      int64  `json:"im_id"`
	Uploads   int    `json:"uploads"`
	IsAdmin   bool   `json:"is_admin"`
	IsMod     bool   `json:"is_mod"`
	IsBooster bool   `json:"is_booster"`
	IsValid   bool   `json:"is_valid"`
	IsBanned  bool   `json:"is_banned"`
}

// ToInfo converts a User to its public view
func (u *User) ToInfo() *Info {
	return &Info{
		Username:  u.Username,
		IMID:      u.IMID,
		Uploads:   u.Uploads,
		IsAdmin:   u.IsAdmin,
		IsMod:     u.IsMod,
		IsBooster: u.IsBooster,
		IsValid:   u.IsValid,
		IsBanned:  u.IsBanned,
	}
}
