package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type Slug string

func NewSlug(s string) Slug   { return Slug(s) }
func (s Slug) String() string { return string(s) }
func (s Slug) IsEmpty() bool  { return string(s) == "" }
