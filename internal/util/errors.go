package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEmptyTitle       = errors.New("title must not be empty")

	// ErrRemoteUnavailable 远程文档存储不可用。调用方记日志后继续走本地状态，
	// 绝不把它作为致命错误抛给用户。
	ErrRemoteUnavailable = errors.New("remote document store unavailable")

	// ErrDocumentNotFound 用户文档尚不存在（首次登录）。
	ErrDocumentNotFound = errors.New("user document not found")
)
