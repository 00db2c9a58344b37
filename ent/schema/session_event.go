package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records the start and end of one practice session.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID linking start/end and answer events"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("level").
			Default("").
			Comment("Beginner, Intermediate, or Advanced"),
		field.String("language").
			Default("").
			Comment("Practice language the questions were generated for"),
		field.Int("question_count").
			Default(0).
			Comment("Questions generated (start) or total (end)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Score at session end"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
