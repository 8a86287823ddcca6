package models

// Role values returned by the backend. The backend is authoritative; the
// client never promotes or demotes a role on its own.
const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type Eligibility struct {
	MinStd int `json:"minStd"`
	MaxStd int `json:"maxStd"`
}

type Workshop struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Date                 string      `json:"date"`
	Time                 string      `json:"time"`
	Location             string      `json:"location"`
	Fee                  float64     `json:"fee"`
	Eligibility          Eligibility `json:"eligibility"`
	RegistrationDeadline string      `json:"registrationDeadline"`
	LearningOutcomes     []string    `json:"learningOutcomes"`
	Capacity             int         `json:"capacity"`
	Status               string      `json:"status"`
}

// RegistrationDraft is the mutable record accumulated across the wizard
// steps and submitted as one unit. Both the guest and the with-account
// submission endpoints accept this same shape.
type RegistrationDraft struct {
	StudentName        string `json:"studentName"`
	SchoolName         string `json:"schoolName"`
	Std                string `json:"std"`
	MobileNumber       string `json:"mobileNumber"`
	AlternateNumber    string `json:"alternateNumber"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	IsPuneResident     bool   `json:"isPuneResident"`
	ReferralSource     string `json:"referralSource"`
	WorkshopID         string `json:"workshopId"`
	WorkshopInterest   string `json:"workshopInterest"`
	Message            string `json:"message"`
	AgreeToTerms       bool   `json:"agreeToTerms"`
	PaymentProofURL    string `json:"paymentProofUrl"`
	PaymentStatus      string `json:"paymentStatus"`
	RegistrationStatus string `json:"registrationStatus"`
}

// Registration is the server-owned record produced by a wizard submission.
// The client only reads it back in dashboards and admin tables.
type Registration struct {
	ID                 string `json:"id"`
	StudentName        string `json:"studentName"`
	SchoolName         string `json:"schoolName"`
	Std                string `json:"std"`
	MobileNumber       string `json:"mobileNumber"`
	AlternateNumber    string `json:"alternateNumber"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	IsPuneResident     bool   `json:"isPuneResident"`
	ReferralSource     string `json:"referralSource"`
	WorkshopID         string `json:"workshopId"`
	WorkshopInterest   string `json:"workshopInterest"`
	Message            string `json:"message"`
	AgreeToTerms       bool   `json:"agreeToTerms"`
	PaymentProofURL    string `json:"paymentProofUrl"`
	PaymentStatus      string `json:"paymentStatus"`
	RegistrationStatus string `json:"registrationStatus"`
	RegistrationDate   string `json:"registrationDate"`
}

// DashboardStats is the aggregate object served by GET /admin/dashboard.
type DashboardStats struct {
	TotalRegistrations           int            `json:"totalRegistrations"`
	RecentRegistrations          int            `json:"recentRegistrations"`
	UpcomingWorkshops            []Workshop     `json:"upcomingWorkshops"`
	NextWorkshopDate             string         `json:"nextWorkshopDate"`
	WorkshopInterestBreakdown    map[string]int `json:"workshopInterestBreakdown"`
	MostPopularWorkshop          string         `json:"mostPopularWorkshop"`
	PopularWorkshopRegistrations int            `json:"popularWorkshopRegistrations"`
	RecentRegistrationsList      []Registration `json:"recentRegistrationsList"`
}
