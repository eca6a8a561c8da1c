package model

// Contingent types
const (
	ContingentTypeSchool            = "SCHOOL"
	ContingentTypeHigherInstitution = "HIGHER_INSTITUTION"
	ContingentTypeIndependent       = "INDEPENDENT"
)

type SchoolModel struct {
	SchoolID      int    `gorm:"column:id;primaryKey;autoIncrement" json:"school_id"`
	SchoolName    string `gorm:"column:name;type:varchar(255);not null" json:"school_name"`
	SchoolStateID int    `gorm:"column:state_id;not null;index" json:"school_state_id"`
	SchoolLevel   string `gorm:"column:level;type:varchar(100)" json:"school_level"`
}

func (SchoolModel) TableName() string { return "schools" }

type HigherInstitutionModel struct {
	HigherInstitutionID      int    `gorm:"column:id;primaryKey;autoIncrement" json:"higher_institution_id"`
	HigherInstitutionName    string `gorm:"column:name;type:varchar(255);not null" json:"higher_institution_name"`
	HigherInstitutionStateID int    `gorm:"column:state_id;not null;index" json:"higher_institution_state_id"`
}

func (HigherInstitutionModel) TableName() string { return "higher_institutions" }

type IndependentModel struct {
	IndependentID      int    `gorm:"column:id;primaryKey;autoIncrement" json:"independent_id"`
	IndependentName    string `gorm:"column:name;type:varchar(255);not null" json:"independent_name"`
	IndependentStateID int    `gorm:"column:state_id;not null;index" json:"independent_state_id"`
}

func (IndependentModel) TableName() string { return "independents" }

// ContingentModel points at exactly one of school, higher institution or
// independent, selected by ContingentType.
type ContingentModel struct {
	ContingentID                  int    `gorm:"column:id;primaryKey;autoIncrement" json:"contingent_id"`
	ContingentName                string `gorm:"column:name;type:varchar(255);not null" json:"contingent_name"`
	ContingentType                string `gorm:"column:contingent_type;type:varchar(30);not null;default:'SCHOOL'" json:"contingent_type"`
	ContingentSchoolID            *int   `gorm:"column:school_id;index" json:"contingent_school_id,omitempty"`
	ContingentHigherInstitutionID *int   `gorm:"column:higher_institution_id;index" json:"contingent_higher_institution_id,omitempty"`
	ContingentIndependentID       *int   `gorm:"column:independent_id;index" json:"contingent_independent_id,omitempty"`
}

func (ContingentModel) TableName() string { return "contingents" }
