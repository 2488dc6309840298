package domain

// DefaultUserName подставляется, если при входе имя не указано.
const DefaultUserName = "User"

// User — локально запомненный покупатель. Телефон не проверяется.
type User struct {
	Name  string
	Phone string
}
