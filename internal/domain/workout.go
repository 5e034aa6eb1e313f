package domain

// WorkoutSegment is one titled block inside a daily workout
// (Primary / Accessory / Conditioning).
type WorkoutSegment struct {
	Title  string `bson:"title" json:"title"`
	Detail string `bson:"detail" json:"detail"`
}

// DailyWorkout is one scheduled training day. The whole collection is
// created in bulk by plan generation and superseded wholesale by the
// next one; only the completion flag is mutated in place.
type DailyWorkout struct {
	ID           string           `bson:"id" json:"id"` // opaque, unique per workout
	Day          string           `bson:"day,omitempty" json:"day,omitempty"`
	Focus        string           `bson:"focus,omitempty" json:"focus,omitempty"`
	Intensity    string           `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Duration     string           `bson:"duration,omitempty" json:"duration,omitempty"`
	ScheduledFor string           `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"` // YYYY-MM-DD
	Segments     []WorkoutSegment `bson:"segments,omitempty" json:"segments,omitempty"`
	Notes        string           `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed    bool             `bson:"completed" json:"completed"`
	CompletedAt  string           `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}
