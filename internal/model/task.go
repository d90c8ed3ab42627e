package model

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64  `json:"id" db:"id"`
	Description string `json:"description" db:"description"`
	Completed   bool   `json:"completed" db:"completed"`
	UserID      int64  `json:"user_id" db:"user_id"`
}

// CreateTaskRequest is the JSON body of POST /tasks.
type CreateTaskRequest struct {
	Description string `json:"description"`
}

// TaskPatch holds the fields of PUT /tasks/{id}. A nil field is left unchanged;
// an explicit JSON null is treated the same as an absent field.
type TaskPatch struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
