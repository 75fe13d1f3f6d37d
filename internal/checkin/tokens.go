package checkin

// Stable option value tokens. A token, not its display label, is the contract
// the engine matches against; once a quiz is live a token's meaning must
// never change. The set is inherited from the production catalog.
const (
	TokenEnergyGood      = "ENERGY_GOOD"
	TokenEnergyMedium    = "ENERGY_MEDIUM"
	TokenEnergyExhausted = "ENERGY_EXHAUSTED"

	TokenFatigueLight    = "FATIGUE_LIGHT"
	TokenFatigueModerate = "FATIGUE_MODERATE"
	TokenFatigueIntense  = "FATIGUE_INTENSE"

	TokenPainNone     = "PAIN_NONE"
	TokenPainModerate = "PAIN_MODERATE"
	TokenPainStrong   = "PAIN_STRONG"

	// TokenSymptomsNone is the "no symptoms" sentinel: the only symptom
	// answer that does not count as a symptom.
	TokenSymptomsNone      = "SYM_NENHUM"
	TokenSymptomsNausea    = "SYM_ENJOO"
	TokenSymptomsDizziness = "SYM_TONTURA"
	TokenSymptomsFever     = "SYM_FEBRE"
	TokenSymptomsMultiple  = "SYM_MULTIPLOS"

	TokenTreatmentNone         = "TREATMENT_NENHUM"
	TokenTreatmentChemo        = "TREATMENT_QUIMIO"
	TokenTreatmentRadio        = "TREATMENT_RADIO"
	TokenTreatmentHormone      = "TREATMENT_HORMONIO"
	TokenTreatmentPostSurgical = "TREATMENT_POS_CIRURGICO"

	TokenSleepGood = "SLEEP_SIM"
	TokenSleepMeh  = "SLEEP_MEH"
	TokenSleepBad  = "SLEEP_NAO"

	TokenEmotionalWell       = "EMO_BEM"
	TokenEmotionalAnxious    = "EMO_ANSI"
	TokenEmotionalSad        = "EMO_TRISTE"
	TokenEmotionalVeryShaken = "EMO_MUITO_ABALADA"

	TokenSafetyYes      = "SAFETY_SIM"
	TokenSafetySomewhat = "SAFETY_POUCO"
	TokenSafetyUnsure   = "SAFETY_DUVIDA"
	TokenSafetyNo       = "SAFETY_NAO"

	// Discomfort and consult-interest slots are YES_NO questions today, but
	// older catalogs shipped them as choices; the engine accepts both shapes.
	TokenDiscomfortYes = "DISCONFORTO_SIM"
	TokenDiscomfortNo  = "DISCONFORTO_NAO"
	TokenConsultYes    = "CONSULT_YES"
	TokenConsultNo     = "CONSULT_NO"
)
