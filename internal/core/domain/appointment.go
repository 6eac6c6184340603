package domain

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPlanned    AppointmentStatus = "PLANIFIE"
	StatusConfirmed  AppointmentStatus = "CONFIRME"
	StatusInProgress AppointmentStatus = "EN_COURS"
	StatusCompleted  AppointmentStatus = "TERMINE"
	StatusCancelled  AppointmentStatus = "ANNULE"
	StatusNoShow     AppointmentStatus = "ABSENT"
)

var statusLabels = map[AppointmentStatus]string{
	StatusPlanned:    "Planifié",
	StatusConfirmed:  "Confirmé",
	StatusInProgress: "En cours",
	StatusCompleted:  "Terminé",
	StatusCancelled:  "Annulé",
	StatusNoShow:     "Absent",
}

// Valid reports whether s is one of the statuses known to the appointments backend.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display name of the status.
func (s AppointmentStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Appointment mirrors RendezVousResponseDTO. Date-times are kept as the
// backend's zone-less ISO strings.
type Appointment struct {
	ID               int64             `json:"id"`
	PatientID        int64             `json:"patientId"`
	PatientLastName  string            `json:"patientNom"`
	PatientFirstName string            `json:"patientPrenom"`
	DoctorID         int64             `json:"medecinId"`
	DoctorLastName   string            `json:"medecinNom"`
	DoctorFirstName  string            `json:"medecinPrenom"`
	DoctorSpecialty  string            `json:"medecinSpecialite"`
	StartsAt         string            `json:"dateHeureDebut"`
	EndsAt           string            `json:"dateHeureFin"`
	Reason           string            `json:"motifConsultation"`
	Status           AppointmentStatus `json:"statut"`
	Notes            string            `json:"notes,omitempty"`
	Fee              *float64          `json:"tarif,omitempty"`
	ReminderSent     bool              `json:"rappelEnvoye"`
	CreatedAt        string            `json:"dateCreation"`
}

// CreateAppointmentRequest is the payload of POST /rdv.
type CreateAppointmentRequest struct {
	PatientID int64  `json:"patientId"         validate:"required,gt=0"`
	DoctorID  int64  `json:"medecinId"         validate:"required,gt=0"`
	StartsAt  string `json:"dateHeureDebut"    validate:"required"`
	EndsAt    string `json:"dateHeureFin"      validate:"required"`
	Reason    string `json:"motifConsultation" validate:"required"`
	Notes     string `json:"notes,omitempty"`
}

// Doctor mirrors MedecinResponseDTO.
type Doctor struct {
	ID                     int64   `json:"id"`
	LastName               string  `json:"nom"`
	FirstName              string  `json:"prenom"`
	RPPSNumber             string  `json:"numeroRPPS"`
	Specialty              string  `json:"specialite"`
	Email                  string  `json:"email"`
	Phone                  string  `json:"telephone"`
	OfficeAddress          string  `json:"adresseCabinet"`
	OfficeZipCode          string  `json:"codePostalCabinet"`
	OfficeCity             string  `json:"villeCabinet"`
	OfficePhone            string  `json:"telephoneCabinet"`
	DefaultDurationMinutes int     `json:"dureeConsultationDefaut"`
	ConsultationFee        float64 `json:"tarifConsultation"`
	Contracted             bool    `json:"conventionne"`
	AcceptsVitaleCard      bool    `json:"carteVitaleAcceptee"`
	Active                 bool    `json:"actif"`
}

// Patient mirrors PatientResponseDTO.
type Patient struct {
	ID                   int64  `json:"id,omitempty"`
	LastName             string `json:"nom"`
	FirstName            string `json:"prenom"`
	BirthDate            string `json:"dateNaissance"`
	SocialSecurityNumber string `json:"numeroSecuriteSociale"`
	Email                string `json:"email"`
	Phone                string `json:"telephone"`
	Address              string `json:"adresse"`
	ZipCode              string `json:"codePostal"`
	City                 string `json:"ville"`
	Allergies            string `json:"allergies,omitempty"`
	MedicalHistory       string `json:"antecedentsMedicaux,omitempty"`
	Active               bool   `json:"actif"`
}

// StatusCounts aggregates appointment counts per status.
type StatusCounts struct {
	Planned   int64 `json:"planifies"`
	Confirmed int64 `json:"confirmes"`
	Completed int64 `json:"termines"`
	Total     int64 `json:"total"`
}
