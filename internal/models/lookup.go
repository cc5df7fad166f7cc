package models

// LookupRow is implemented by every taxonomy entity so the reference-data
// store can be written once and instantiated per kind.
type LookupRow interface {
	RowID() uint
	SetRowID(id uint)
	LabelColumn() string
	LabelValue() string
}

type Priority struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Level string `json:"level" gorm:"uniqueIndex;not null"`
}

func (Priority) TableName() string { return "priorities" }

func (p *Priority) RowID() uint         { return p.ID }
func (p *Priority) SetRowID(id uint)    { p.ID = id }
func (p *Priority) LabelColumn() string { return "level" }
func (p *Priority) LabelValue() string  { return p.Level }

type Impact struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Description string `json:"description" gorm:"uniqueIndex;not null"`
}

func (Impact) TableName() string { return "impacts" }

func (i *Impact) RowID() uint         { return i.ID }
func (i *Impact) SetRowID(id uint)    { i.ID = id }
func (i *Impact) LabelColumn() string { return "description" }
func (i *Impact) LabelValue() string  { return i.Description }

type Urgency struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Level string `json:"level" gorm:"uniqueIndex;not null"`
}

func (Urgency) TableName() string { return "urgencies" }

func (u *Urgency) RowID() uint         { return u.ID }
func (u *Urgency) SetRowID(id uint)    { u.ID = id }
func (u *Urgency) LabelColumn() string { return "level" }
func (u *Urgency) LabelValue() string  { return u.Level }

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) RowID() uint         { return c.ID }
func (c *Category) SetRowID(id uint)    { c.ID = id }
func (c *Category) LabelColumn() string { return "name" }
func (c *Category) LabelValue() string  { return c.Name }

// ResolutionCode carries an optional free-text description alongside the
// unique code itself.
type ResolutionCode struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
}

func (ResolutionCode) TableName() string { return "resolution_codes" }

func (r *ResolutionCode) RowID() uint         { return r.ID }
func (r *ResolutionCode) SetRowID(id uint)    { r.ID = id }
func (r *ResolutionCode) LabelColumn() string { return "code" }
func (r *ResolutionCode) LabelValue() string  { return r.Code }

type PendingReason struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Reason string `json:"reason" gorm:"uniqueIndex;not null"`
}

func (PendingReason) TableName() string { return "pending_reasons" }

func (p *PendingReason) RowID() uint         { return p.ID }
func (p *PendingReason) SetRowID(id uint)    { p.ID = id }
func (p *PendingReason) LabelColumn() string { return "reason" }
func (p *PendingReason) LabelValue() string  { return p.Reason }
