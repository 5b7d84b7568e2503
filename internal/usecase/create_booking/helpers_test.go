package create_booking

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

func typesTime(s string) types.TimeString {
	return types.TimeString(s)
}
