package locales

// Locale holds the user-facing message set for one client locale
type Locale struct {
	AccountNotFound      string
	AccountIsNotValid    string
	AccountBanned        string
	AccountErrorPassword string
	UploadLimitReached   string
}

var enUS = &Locale{
	AccountNotFound:      "Account not found.",
	AccountIsNotValid:    "Account is not valid, please check your email.",
	AccountBanned:        "Account has been banned.",
	AccountErrorPassword: "Incorrect password.",
	UploadLimitReached:   "You have reached the upload limit.",
}

var esES = &Locale{
	AccountNotFound:      "Cuenta no encontrada.",
	AccountIsNotValid:    "La cuenta no es válida, revisa tu correo.",
	AccountBanned:        "La cuenta ha sido baneada.",
	AccountErrorPassword: "Contraseña incorrecta.",
	UploadLimitReached:   "Has alcanzado el límite de subidas.",
}

var zhCN = &Locale{
	AccountNotFound:      "账户不存在。",
	AccountIsNotValid:    "账户未激活，请检查你的邮箱。",
	AccountBanned:        "账户已被封禁。",
	AccountErrorPassword: "密码错误。",
	UploadLimitReached:   "你已达到上传上限。",
}

var registry = map[string]*Locale{
	"en_US": enUS,
	"es_ES": esES,
	"zh_CN": zhCN,
}

// Get returns the message set for a locale code, falling back to en_US
func Get(code string) *Locale {
	if l, ok := registry[code]; ok {
		return l
	}
	return enUS
}

// Exists reports whether a locale code is supported
func Exists(code string) bool {
	_, ok := registry[code]
	return ok
}
