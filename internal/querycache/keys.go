package querycache

// Keys follow the resource hierarchy so that invalidating a parent drops its
// children.

const KeyBusinesses = "businesses"

const KeyMe = "auth/me"

func BusinessKey(businessID string) string {
	return "business/" + businessID
}

// BusinessProfileKey holds the business record itself, apart from its children.
func BusinessProfileKey(businessID string) string {
	return BusinessKey(businessID) + "/profile"
}

func BookingsKey(businessID string) string {
	return BusinessKey(businessID) + "/bookings"
}

func BookingKey(businessID, bookingID string) string {
	return BookingsKey(businessID) + "/" + bookingID
}

func CourtsKey(businessID string) string {
	return BusinessKey(businessID) + "/courts"
}

func CourtKey(businessID, courtID string) string {
	return CourtsKey(businessID) + "/" + courtID
}

func AvailabilityRulesKey(businessID string) string {
	return BusinessKey(businessID) + "/availability-rules"
}

func ExceptionRulesKey(businessID string) string {
	return BusinessKey(businessID) + "/exception-rules"
}

func BusinessUsersKey(businessID string) string {
	return BusinessKey(businessID) + "/users"
}

// CourtAvailabilityKey holds the rules attached to a court.
func CourtAvailabilityKey(courtID string) string {
	return "court/" + courtID + "/availability-rules"
}

// CourtExceptionsKey holds the exception join rows of a court.
func CourtExceptionsKey(courtID string) string {
	return "court/" + courtID + "/exception-rules"
}

func ExceptionRuleKey(ruleID string) string {
	return "exception-rule/" + ruleID
}

func AvailabilityRuleKey(ruleID string) string {
	return "availability-rule/" + ruleID
}
