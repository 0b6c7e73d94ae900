// Package handler はHTTP APIのルーティングとハンドラーを提供する。
//
// レスポンスは統一エンベロープに従う:
//
//	2xx: {"status": "success", "data": ..., "message": ...}
//	4xx: {"status": "fail", "message": ...}
//	5xx: {"status": "error", "message": ...}
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/tunebox/internal/model"
)

// envelope は統一レスポンスフォーマット。
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeSuccess はデータ付きの成功レスポンスを書き込む。
func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, envelope{Status: "success", Data: data})
}

// writeSuccessMessage はメッセージ付きの成功レスポンスを書き込む。
func writeSuccessMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Status: "success", Message: message})
}

// writeFail はクライアント起因の失敗レスポンスを書き込む。
func writeFail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Status: "fail", Message: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// 分類済みのAPIErrorは対応するステータスコードの"fail"レスポンスになり、
// それ以外は詳細をログにのみ残して不透明な"error"レスポンスになる。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeFail(w, mapErrorKindToHTTPStatus(apiErr.Kind), apiErr.Message)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, envelope{
		Status:  "error",
		Message: "サーバー内部でエラーが発生しました",
	})
}

// mapErrorKindToHTTPStatus はエラー分類からHTTPステータスコードにマッピングする。
func mapErrorKindToHTTPStatus(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation, model.KindInvariant:
		return http.StatusBadRequest
	case model.KindAuthentication:
		return http.StatusUnauthorized
	case model.KindAuthorization:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
