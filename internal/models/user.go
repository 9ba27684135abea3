package models

// User — зарегистрированный студент. TelegramID заполнен только после /start.
type User struct {
	Username   string
	Fullname   string
	GroupID    string
	StudentID  int64
	TelegramID *int64
}

// Subscribed — есть ли у пользователя адрес для push-уведомлений.
func (u User) Subscribed() bool {
	return u.TelegramID != nil && *u.TelegramID != 0
}
