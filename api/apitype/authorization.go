package apitype

type AuthorizationStatus int

const (
	NOT_DETERMINED AuthorizationStatus = iota
	DENIED
	LIMITED
	AUTHORIZED
)

func (s AuthorizationStatus) IsGranted() bool {
	return s == AUTHORIZED || s == LIMITED
}

func (s AuthorizationStatus) String() string {
	switch s {
	case NOT_DETERMINED:
		return "not-determined"
	case DENIED:
		return "denied"
	case LIMITED:
		return "limited"
	case AUTHORIZED:
		return "authorized"
	}
	return "unknown"
}
