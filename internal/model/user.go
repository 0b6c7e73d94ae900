// Package model はドメインモデルを定義する。
package model

// User はサービス利用ユーザーを表す。
// Passwordはbcryptハッシュを保持し、APIレスポンスには含めない。
type User struct {
	ID       string
	Username string
	Password string
	Fullname string
}
