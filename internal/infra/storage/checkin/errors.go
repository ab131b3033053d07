package checkin

import "errors"

var (
	// ErrCheckInNotFound возвращается, когда запись чек-ина не найдена
	ErrCheckInNotFound = errors.New("checkin.repository: check-in not found")

	// ErrOpenSessionExists возвращается, когда constraint БД отклонил второй
	// открытый чек-ин актора (частичный уникальный индекс по открытым сессиям)
	ErrOpenSessionExists = errors.New("checkin.repository: actor already has an open check-in")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("checkin.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("checkin.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("checkin.repository: failed to scan row")
)
