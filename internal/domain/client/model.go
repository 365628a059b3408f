package client

// Client is a registered API consumer (a game client build, a bot),
// identified by its token and distinct from any end-user account.
type Client struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Token   string `gorm:"column:token;uniqueIndex;not null"`
	Type    int    `gorm:"column:type;not null"`
	Locale  string `gorm:"column:locale;not null"`
	Mobile  bool   `gorm:"column:mobile;default:false"`
	Proxied bool   `gorm:"column:proxied;default:false"`
	Valid   bool   `gorm:"column:valid;default:true"`
}

func (Client) TableName() string {
	return "clients"
}
