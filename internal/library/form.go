package library

import "strings"

// BookFormData is the payload used to create a book.
type BookFormData struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"cover_url"`
	Notes    string `json:"notes"`
	Rating   int    `json:"rating"`
	Status   Status `json:"status"`
	Progress int    `json:"progress"`
}

// Validate checks the fields a book cannot be created without.
func (f BookFormData) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(f.Author) == "" {
		return &ValidationError{Field: "author", Message: "author is required"}
	}
	if f.Status != "" && !f.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + string(f.Status)}
	}
	return nil
}

// Normalize trims the display strings, clamps rating and progress and
// applies the status/progress coupling. A missing status becomes Wish List.
func (f BookFormData) Normalize() BookFormData {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	if f.Status == "" {
		f.Status = StatusWishList
	}
	f.Rating = ClampRating(f.Rating)
	f.Progress = NormalizeStatusProgress(f.Status, ClampProgress(f.Progress))
	return f
}

// BookUpdate is a partial update. Nil fields are left untouched.
type BookUpdate struct {
	Title    *string `json:"title,omitempty"`
	Author   *string `json:"author,omitempty"`
	CoverURL *string `json:"cover_url,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Progress *int    `json:"progress,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.CoverURL == nil && u.Notes == nil &&
		u.Rating == nil && u.Status == nil && u.Progress == nil
}

// Validate rejects updates that would blank a required field or set an
// unknown status.
func (u BookUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if u.Author != nil && strings.TrimSpace(*u.Author) == "" {
		return &ValidationError{Field: "author", Message: "author cannot be empty"}
	}
	if u.Status != nil && !u.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown status " + string(*u.Status)}
	}
	return nil
}

// Normalize returns a copy of u with trimmed strings, clamped numbers and the
// status/progress coupling applied. current is the book being updated, if
// known; it is used to keep a Read book at 100% when only progress changes.
func (u BookUpdate) Normalize(current *Book) BookUpdate {
	if u.Title != nil {
		u.Title = ptr(strings.TrimSpace(*u.Title))
	}
	if u.Author != nil {
		u.Author = ptr(strings.TrimSpace(*u.Author))
	}
	if u.Rating != nil {
		u.Rating = ptr(ClampRating(*u.Rating))
	}
	if u.Progress != nil {
		u.Progress = ptr(ClampProgress(*u.Progress))
	}

	switch {
	case u.Status != nil:
		progress := 0
		if u.Progress != nil {
			progress = *u.Progress
		} else if current != nil {
			progress = current.Progress
		}
		normalized := NormalizeStatusProgress(*u.Status, progress)
		if u.Progress != nil || normalized != progress {
			u.Progress = ptr(normalized)
		}
	case u.Progress != nil && current != nil && current.Status == StatusRead:
		u.Progress = ptr(MaxProgress)
	}
	return u
}

// NormalizeStatusProgress returns the progress a book must have when its
// status is being set: Read forces 100, Wish List forces 0 and Reading keeps
// the given value.
func NormalizeStatusProgress(status Status, progress int) int {
	switch status {
	case StatusRead:
		return MaxProgress
	case StatusWishList:
		return 0
	default:
		return progress
	}
}

// ClampProgress bounds progress to 0..100.
func ClampProgress(p int) int {
	return clamp(p, 0, MaxProgress)
}

// ClampRating bounds rating to 0..5.
func ClampRating(r int) int {
	return clamp(r, 0, MaxRating)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ptr[T any](v T) *T {
	return &v
}
