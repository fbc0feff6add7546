// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了從 cookie 還原 session 綁定的中間件。
// 綁定的完整性由簽名保證，偽造或過期的 token 一律視為未綁定。
package middleware
