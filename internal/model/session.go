package model

// Session — единственная текущая сессия процесса.
// CurrentUser — копия записи из реестра, а не ссылка на неё.
type Session struct {
	CurrentUser *Account `json:"currentUser,omitempty"`
	IsLoggedIn  bool     `json:"isLoggedIn"`
	Role        Role     `json:"role,omitempty"`
}

// ActorID возвращает id текущего пользователя или пустую строку.
func (s Session) ActorID() string {
	if s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.ID
}

// Actor возвращает копию текущего пользователя; для гостя пустую запись.
func (s Session) Actor() Account {
	if s.CurrentUser == nil {
		return Account{}
	}
	return s.CurrentUser.Clone()
}

func (s Session) Clone() Session {
	c := s
	if s.CurrentUser != nil {
		u := s.CurrentUser.Clone()
		c.CurrentUser = &u
	}
	return c
}
