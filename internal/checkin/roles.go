package checkin

// Role is the stable semantic slot of a question. The engine addresses
// answers by role (resolved once at quiz load), never by display order or
// question id, so catalog reordering cannot change a classification.
type Role string

const (
	RoleEnergy          Role = "ENERGY"
	RoleFatigue         Role = "FATIGUE"
	RolePain            Role = "PAIN"
	RoleSymptoms        Role = "SYMPTOMS"
	RoleTreatmentDay    Role = "TREATMENT_DAY"
	RoleSleep           Role = "SLEEP"
	RoleEmotional       Role = "EMOTIONAL"
	RoleSafety          Role = "SAFETY"
	RoleDiscomfort      Role = "DISCOMFORT"
	RoleConsultInterest Role = "CONSULT_INTEREST"

	// RoleNone marks questions that carry no semantic slot for the engine,
	// e.g. profiling questions of the initial assessment quiz.
	RoleNone Role = "NONE"
)

// DailyCheckinRoles lists the slots of the canonical daily check-in quiz in
// their conventional display order.
var DailyCheckinRoles = []Role{
	RoleEnergy,
	RoleFatigue,
	RolePain,
	RoleSymptoms,
	RoleTreatmentDay,
	RoleSleep,
	RoleEmotional,
	RoleSafety,
	RoleDiscomfort,
	RoleConsultInterest,
}

// IsValidRole checks a role value against the closed set.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleEnergy, RoleFatigue, RolePain, RoleSymptoms, RoleTreatmentDay,
		RoleSleep, RoleEmotional, RoleSafety, RoleDiscomfort,
		RoleConsultInterest, RoleNone:
		return true
	}
	return false
}
