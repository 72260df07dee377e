package kernel

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Vehicle describes the truck used for a dispatch: plate number, body type and tonnage.
type Vehicle struct {
	number      string
	vehicleType string
	tonnage     decimal.Decimal
}

func NewVehicle(number, vehicleType string, tonnage decimal.Decimal) (Vehicle, error) {
	number = strings.TrimSpace(number)
	vehicleType = strings.TrimSpace(vehicleType)

	var errNumber, errType, errTonnage error
	if number == "" {
		errNumber = errs.NewValueIsRequiredError("vehicle number")
	}
	if vehicleType == "" {
		errType = errs.NewValueIsRequiredError("vehicle type")
	}
	if !tonnage.IsPositive() {
		errTonnage = errs.NewValueIsInvalidErrorWithCause(
			"vehicle tonnage",
			fmt.Errorf("%s is not greater than 0", tonnage),
		)
	}
	if err := errors.Join(errNumber, errType, errTonnage); err != nil {
		return Vehicle{}, err
	}

	return Vehicle{number: number, vehicleType: vehicleType, tonnage: tonnage}, nil
}

func (v Vehicle) Number() string {
	return v.number
}

func (v Vehicle) Type() string {
	return v.vehicleType
}

func (v Vehicle) Tonnage() decimal.Decimal {
	return v.tonnage
}

func (v Vehicle) IsZero() bool {
	return v.number == ""
}
