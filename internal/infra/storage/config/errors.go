package config

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика бронирования не найдена
	ErrPolicyNotFound = errors.New("config.repository: booking policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("config.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("config.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("config.repository: failed to scan row")
)
