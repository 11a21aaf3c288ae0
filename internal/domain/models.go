// Package domain defines the persistence models for the case-management
// application: trial types, categories, people, trials ("procesos") and
// procedural actions ("actuaciones"). These types are mapped with GORM and
// form the core data layer of the backend.
package domain

import (
	"time"
)

// Status enumerates the procedural stage of a trial. The conventional path is
// PRIMERA_INSTANCIA → SEGUNDA_INSTANCIA → ARCHIVADO, but arbitrary transitions
// are not forbidden at the persistence layer.
type Status string

const (
	StatusPrimeraInstancia Status = "PRIMERA_INSTANCIA"
	StatusSegundaInstancia Status = "SEGUNDA_INSTANCIA"
	StatusArchivado        Status = "ARCHIVADO"
)

// ValidStatus reports whether s is one of the enumerated trial statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPrimeraInstancia, StatusSegundaInstancia, StatusArchivado:
		return true
	}
	return false
}

// TypeTrial is a trial-type catalog row ("Tutela", "Ejecutivo", ...). The set
// is open and administered externally; business rules resolve rows to a
// TrialKind (see kind.go) rather than re-parsing names.
type TypeTrial struct {
	ID   string `json:"id"   gorm:"type:char(36);primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the database table name for TypeTrial.
func (TypeTrial) TableName() string { return "type_trials" }

// Category is a sub-classification belonging to exactly one trial type.
// A trial's category must belong to the trial's own type family.
type Category struct {
	ID          string `json:"id"          gorm:"type:char(36);primaryKey"`
	Description string `json:"description" gorm:"type:varchar(255);not null"`
	TypeTrialID string `json:"typeTrialId" gorm:"type:char(36);not null;index"`

	TypeTrial TypeTrial `json:"typeTrial,omitempty" gorm:"foreignKey:TypeTrialID;references:ID"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// EntryType classifies how a case entered the office. It is an independent
// dimension that cross-cuts all trial types.
type EntryType struct {
	ID          string `json:"id"          gorm:"type:char(36);primaryKey"`
	Description string `json:"description" gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for EntryType.
func (EntryType) TableName() string { return "entry_types" }

// Person is a party to a trial (plaintiff or defendant). Document numbers are
// unique across all people.
type Person struct {
	ID           string `json:"id"           gorm:"type:char(36);primaryKey"`
	Name         string `json:"name"         gorm:"type:varchar(255);not null"`
	DocumentType string `json:"documentType" gorm:"type:varchar(50);not null"`
	Document     string `json:"document"     gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the database table name for Person.
func (Person) TableName() string { return "people" }

// TypeAction is a coarse classification of procedural actions. Two
// distinguished values drive statistics branching: descriptions containing
// "auto" and descriptions containing "sentencia" (case-insensitive).
type TypeAction struct {
	ID          string `json:"id"          gorm:"type:char(36);primaryKey"`
	Description string `json:"description" gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for TypeAction.
func (TypeAction) TableName() string { return "type_actions" }

// DescriptionAction is a catalog entry naming a specific procedural-action
// wording. TypeTrialID is nullable: nil means the entry applies to every
// trial type; non-nil scopes it to one type family.
//
// (Description, TypeActionID, TypeTrialID) triples are unique.
type DescriptionAction struct {
	ID           string  `json:"id"           gorm:"type:char(36);primaryKey"`
	Description  string  `json:"description"  gorm:"type:varchar(255);not null;uniqueIndex:ux_desc_action"`
	TypeActionID string  `json:"typeActionId" gorm:"type:char(36);not null;index;uniqueIndex:ux_desc_action"`
	TypeTrialID  *string `json:"typeTrialId"  gorm:"type:char(36);index;uniqueIndex:ux_desc_action"`

	TypeAction TypeAction `json:"typeAction,omitempty" gorm:"foreignKey:TypeActionID;references:ID"`
	TypeTrial  *TypeTrial `json:"typeTrial,omitempty"  gorm:"foreignKey:TypeTrialID;references:ID"`
}

// TableName returns the database table name for DescriptionAction.
func (DescriptionAction) TableName() string { return "description_actions" }

// Trial is a judicial case record ("proceso").
//
// Invariants enforced by the trial service:
//   - CategoryID is required unless the type resolves to pago por
//     consignación, in which case it must be absent.
//   - Status ARCHIVADO implies a CloseDate.
//   - An incidente de desacato requires a pre-existing Tutela with the
//     same Number.
//   - PlaintiffID ≠ DefendantID.
//
// (Number, TypeTrialID) is not unique: the same number is shared by a Tutela
// and its incidente de desacato; the pair is the natural key for "family of
// related trials".
type Trial struct {
	ID          string     `json:"id"          gorm:"type:char(36);primaryKey"`
	Number      string     `json:"number"      gorm:"type:varchar(50);not null;index"`
	TypeTrialID string     `json:"typeTrialId" gorm:"type:char(36);not null;index"`
	CategoryID  *string    `json:"categoryId"  gorm:"type:char(36);index"`
	PlaintiffID string     `json:"plaintiffId" gorm:"type:char(36);not null"`
	DefendantID string     `json:"defendantId" gorm:"type:char(36);not null"`
	EntryTypeID string     `json:"entryTypeId" gorm:"type:char(36);index"`
	ArrivalDate time.Time  `json:"arrivalDate" gorm:"not null;index"`
	CloseDate   *time.Time `json:"closeDate"`
	Status      Status     `json:"status"      gorm:"type:varchar(20);not null"`

	TypeTrial TypeTrial  `json:"typeTrial,omitempty" gorm:"foreignKey:TypeTrialID;references:ID"`
	Category  *Category  `json:"category,omitempty"  gorm:"foreignKey:CategoryID;references:ID"`
	Plaintiff Person     `json:"plaintiff,omitempty" gorm:"foreignKey:PlaintiffID;references:ID"`
	Defendant Person     `json:"defendant,omitempty" gorm:"foreignKey:DefendantID;references:ID"`
	EntryType *EntryType `json:"entryType,omitempty" gorm:"foreignKey:EntryTypeID;references:ID"`
	Actions   []Action   `json:"actions,omitempty"   gorm:"foreignKey:TrialID;references:ID"`
}

// TableName returns the database table name for Trial.
func (Trial) TableName() string { return "trials" }

// Action is a procedural event recorded against a trial ("actuación").
// TrialID is nullable: office-wide actions are not tied to a case.
type Action struct {
	ID                  string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	DescriptionActionID string    `json:"descriptionActionId" gorm:"type:char(36);not null;index"`
	Date                time.Time `json:"date"                gorm:"not null;index"`
	TrialID             *string   `json:"trialId"             gorm:"type:char(36);index"`

	DescriptionAction DescriptionAction `json:"descriptionAction,omitempty" gorm:"foreignKey:DescriptionActionID;references:ID"`
	Trial             *Trial            `json:"trial,omitempty"             gorm:"foreignKey:TrialID;references:ID"`
}

// TableName returns the database table name for Action.
func (Action) TableName() string { return "actions" }
