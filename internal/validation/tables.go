package validation

// Answer rules. question_id existence is checked against the store by the
// service (create only); the table covers the value-level rules.
var Answer = Table{
	Rules: map[string]string{
		"content":  "required",
		"price":    "numeric,min=0,max=10",
		"currency": "required",
	},
	Messages: map[string]string{
		"question_id.required": "Oops! The question was not found.",
		"question_id.exists":   "Oops! The question was not found.",

		"content.required":    "Content or description is required.",
		"price.required_with": "Price is required.",
		"price.numeric":       "Invalid price.",
		"price.min":           "Price should be 0 or more.",
		"price.max":           "Price should not exceed 10.",
		"currency.required":   "Currency is required.",
	},
}

var Question = Table{
	Rules: map[string]string{
		"title":   "required",
		"content": "required",
	},
	Messages: map[string]string{
		"title.required":   "Title is required.",
		"content.required": "Content or description is required.",
		"img_src.image":    "Uploaded item should be an image.",

		"tags.array": "Unable to read tags.",
	},
}

var Vote = Table{
	Rules: map[string]string{
		"value": "required,oneof=-1 1",
	},
	Messages: map[string]string{
		"value.required": "Vote value is required.",
		"value.oneof":    "Vote value should be 1 or -1.",

		"voteable_type.exists": "Unable to vote on that.",
	},
}

var User = Table{
	Rules: map[string]string{
		"fname":    "required",
		"lname":    "required",
		"email":    "required,email",
		"password": "required,min=6",
	},
	Messages: map[string]string{
		"fname.required":    "First name is required.",
		"lname.required":    "Last name is required.",
		"email.required":    "Email is required.",
		"email.email":       "Invalid email address.",
		"email.unique":      "Email is already taken.",
		"password.required": "Password is required.",
		"password.min":      "Password should be at least 6 characters.",
	},
}
