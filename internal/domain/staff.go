package domain

// Doctor is a member of the clinical staff. Rating is the doctor's own 0.0-5.0 score.
type Doctor struct {
	ID             int     `bson:"_id" json:"id"`
	Name           string  `bson:"name" json:"name"`
	DepartmentID   int     `bson:"department_id" json:"department_id"`
	Specialization string  `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Qualification  string  `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Rating         float64 `bson:"rating" json:"rating"`
}

// Department groups doctors.
type Department struct {
	ID       int    `bson:"_id" json:"id"`
	DeptName string `bson:"dept_name" json:"dept_name"`
}
