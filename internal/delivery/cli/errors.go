package cli

import (
	"errors"

	"github.com/frontandrew/parking/internal/domain"
)

// describeError переводит ошибку в сообщение для оператора
func describeError(err error) string {
	switch {
	case errors.Is(err, domain.ErrVehicleSizeNotSupported):
		return "Sorry, the size of your vehicle is not supported."
	case errors.Is(err, domain.ErrVehicleAlreadyExists):
		return "A vehicle with this license plate is already parked."
	case errors.Is(err, domain.ErrInvalidLicensePlate):
		return "The license plate is not valid."
	case errors.Is(err, domain.ErrNoFreeSpace):
		return "There are no free parking spaces! Try again later."
	case errors.Is(err, domain.ErrVehicleNotFound):
		return "The vehicle does not exist! Contact parking staff."
	case errors.Is(err, domain.ErrSpaceNotFound):
		return "This parking space does not exist."
	case errors.Is(err, domain.ErrSpaceOccupied):
		return "This parking space is already occupied!"
	case errors.Is(err, domain.ErrCategoryNotAccepted):
		return "This parking zone cannot support this type of vehicle."
	case errors.Is(err, domain.ErrTokenExpired):
		return "Your exit token has expired. Contact parking staff."
	case errors.Is(err, domain.ErrTokenNotFound):
		return "This token is invalid! Try again."
	case errors.Is(err, domain.ErrNoFreeToken):
		return "No exit tokens available. Contact parking staff."
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "The employee does not exist."
	case errors.Is(err, domain.ErrInvalidEmployeeData):
		return "The employee data is not valid."
	case errors.Is(err, domain.ErrZoneNotFound):
		return "The parking zone does not exist."
	case errors.Is(err, domain.ErrZoneAlreadyExists):
		return "A parking zone with this ID already exists."
	case errors.Is(err, domain.ErrZoneOccupied):
		return "The parking zone still has parked vehicles."
	case errors.Is(err, domain.ErrZoneMismatch):
		return "Every parking space ID must start with the zone ID."
	case errors.Is(err, domain.ErrInvalidRate), errors.Is(err, domain.ErrInvalidZoneData):
		return "The parking zone data is not valid."
	case errors.Is(err, domain.ErrInvalidVehicleCategory):
		return "Unknown vehicle type."
	case errors.Is(err, domain.ErrInvalidCoin):
		return "This coin is not accepted."
	case errors.Is(err, domain.ErrInvalidInterval):
		return "The parking receipt cannot end before it starts."
	default:
		return "Error: " + err.Error()
	}
}
