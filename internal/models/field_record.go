package models

// NotPresent is the value the model uses for a field it could not find.
const NotPresent = "not present"

const (
	FieldPatientName       = "Patient Name"
	FieldPatientDOB        = "Patient Date of Birth"
	FieldPatientAddress    = "Patient Address"
	FieldPatientGender     = "Patient Gender"
	FieldOrderingPhysician = "Ordering Physician Name"
)

// RequiredFields lists every key a FieldRecord must carry, in response order.
var RequiredFields = []string{
	FieldPatientName,
	FieldPatientDOB,
	FieldPatientAddress,
	FieldPatientGender,
	FieldOrderingPhysician,
}

// FieldRecord is the structured result of a lab result extraction.
type FieldRecord struct {
	PatientName       string `json:"Patient Name"`
	PatientDOB        string `json:"Patient Date of Birth"`
	PatientAddress    string `json:"Patient Address"`
	PatientGender     string `json:"Patient Gender"`
	OrderingPhysician string `json:"Ordering Physician Name"`
}
