package model

import "github.com/google/uuid"

// NewID はプレフィックス付きの一意な識別子を生成する。
// 形式は "<prefix>-<uuid>"。全テーブルのid列（VARCHAR(50)）に収まる。
func NewID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}
