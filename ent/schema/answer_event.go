package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered question within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("question_id").
			NotEmpty().
			Comment("Question ID within the generated set"),
		field.String("question_type").
			NotEmpty().
			Comment("mcq or code"),
		field.String("question_text").
			NotEmpty().
			Comment("The question shown"),
		field.String("correct_answer").
			NotEmpty().
			Comment("The reference answer"),
		field.String("learner_answer").
			Default("").
			Comment("The chosen option or submitted code"),
		field.Bool("correct").
			Comment("Whether the answer was judged correct"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
