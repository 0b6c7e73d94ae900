// Package model はドメインモデルを定義する。
package model

// ErrorKind はAPIエラーの分類を表す。
// HTTPステータスコードへのマッピングはhandler層が行う。
type ErrorKind string

const (
	// KindValidation は入力値の形式不正を示す（400相当）。
	KindValidation ErrorKind = "validation"
	// KindAuthentication は認証情報の不備・不正を示す（401相当）。
	KindAuthentication ErrorKind = "authentication"
	// KindAuthorization はリソースへのアクセス権限の欠如を示す（403相当）。
	KindAuthorization ErrorKind = "authorization"
	// KindNotFound は参照先リソースの不存在を示す（404相当）。
	KindNotFound ErrorKind = "not_found"
	// KindInvariant は影響行数が期待と異なる書き込み失敗を示す（400相当）。
	// 削除対象が見つからない場合にも使用される（挙動互換のため）。
	KindInvariant ErrorKind = "invariant"
)

// APIError は分類付きのアプリケーションエラーを表す。
// Kindが定義済みのものはhandler層で対応するステータスコードに変換され、
// それ以外のエラーは詳細を隠した500レスポンスになる。
type APIError struct {
	Kind    ErrorKind
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return "[" + string(e.Kind) + "] " + e.Message
}

// NewValidationError は入力値不正エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}

// NewAuthenticationError は認証エラーを生成する。
func NewAuthenticationError(message string) *APIError {
	return &APIError{Kind: KindAuthentication, Message: message}
}

// NewAuthorizationError は認可エラーを生成する。
func NewAuthorizationError(message string) *APIError {
	return &APIError{Kind: KindAuthorization, Message: message}
}

// NewNotFoundError はリソース不存在エラーを生成する。
func NewNotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

// NewInvariantError は書き込み確認失敗エラーを生成する。
func NewInvariantError(message string) *APIError {
	return &APIError{Kind: KindInvariant, Message: message}
}
