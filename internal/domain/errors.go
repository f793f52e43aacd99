package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Vehicle errors
var (
	ErrVehicleNotFound         = errors.New("vehicle does not exist")
	ErrVehicleAlreadyExists    = errors.New("vehicle already exists")
	ErrVehicleSizeNotSupported = errors.New("vehicle size not supported")
	ErrInvalidVehicleCategory  = errors.New("invalid vehicle category")
	ErrInvalidLicensePlate     = errors.New("invalid license plate")
	ErrCategoryNotAccepted     = errors.New("vehicle category not accepted in zone")
)

// Zone and space errors
var (
	ErrZoneNotFound      = errors.New("parking zone does not exist")
	ErrZoneAlreadyExists = errors.New("parking zone already exists")
	ErrZoneMismatch      = errors.New("parking space does not belong to parking zone")
	ErrZoneOccupied      = errors.New("parking zone has parked vehicles")
	ErrInvalidZoneData   = errors.New("invalid parking zone data")
	ErrInvalidRate       = errors.New("invalid hourly rate")
	ErrSpaceNotFound     = errors.New("parking space does not exist")
	ErrSpaceOccupied     = errors.New("parking space is already occupied")
	ErrNoFreeSpace       = errors.New("no free parking spaces")
)

// Receipt errors
var (
	ErrInvalidInterval  = errors.New("end date before start date")
	ErrRateUnbound      = errors.New("hourly rate not set")
	ErrReceiptNotClosed = errors.New("parking receipt is not closed")
	ErrInvalidCoin      = errors.New("invalid coin")
)

// Exit token errors
var (
	ErrTokenNotFound = errors.New("exit token is invalid")
	ErrTokenExpired  = errors.New("exit token expired")
	ErrNoFreeToken   = errors.New("all exit token ids are in use")
)

// Employee errors
var (
	ErrEmployeeNotFound    = errors.New("employee does not exist")
	ErrNoIdleEmployee      = errors.New("all employees are busy")
	ErrInvalidEmployeeData = errors.New("invalid employee data")
)

// Snapshot errors
var (
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
