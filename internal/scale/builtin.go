package scale

// Toxicity is the 10-point Peacemaker toxicity scale. Higher is worse.
func Toxicity() *Descriptor {
	return &Descriptor{
		Name:          "toxicity",
		Title:         "Toxicity Scale",
		Summary:       "a 10-point scale from non-toxic (1) to severe (10)",
		Min:           1,
		Max:           10,
		Direction:     AscendingSeverity,
		DefaultScore:  5,
		RequiresTopic: true,
		LowLabel:      "Non-toxic",
		HighLabel:     "Severe",
		Bands: []Band{
			{Category: "non-toxic", Label: "Non-toxic", Min: 1, Max: 2, Badge: "success", ScoreColor: "text-green-500"},
			{Category: "mild", Label: "Mild", Min: 3, Max: 4, Badge: "secondary", ScoreColor: "text-yellow-500"},
			{Category: "moderate", Label: "Moderate", Min: 5, Max: 6, Badge: "warning", ScoreColor: "text-orange-500"},
			{Category: "toxic", Label: "Toxic", Min: 7, Max: 8, Badge: "destructive", ScoreColor: "text-red-500"},
			{Category: "severe", Label: "Severe", Min: 9, Max: 10, Badge: "destructive", ScoreColor: "text-red-700"},
		},
		Levels: []Level{
			{1, "Level 1", "Non-toxic", "bg-green-600",
				"Completely non-toxic, respectful, and constructive.",
				"This communication is completely respectful and contributes positively to the conversation."},
			{2, "Level 2", "Non-toxic", "bg-green-500",
				"Generally respectful with minor criticism.",
				"The message maintains respect while offering some light critique or feedback."},
			{3, "Level 3", "Mild", "bg-green-400",
				"Mildly critical but still respectful and civil.",
				"Although critical, the communication remains civil and focused on ideas rather than people."},
			{4, "Level 4", "Mild", "bg-yellow-400",
				"Noticeably critical, some negative tone, but no hostility.",
				"The tone is noticeably negative, but there's no direct hostility or personal attacks."},
			{5, "Level 5", "Moderate", "bg-yellow-500",
				"Moderately negative, clear criticism, mild hostility.",
				"Shows clear negativity with some hostility, but remains within conversational bounds."},
			{6, "Level 6", "Moderate", "bg-orange-400",
				"Negative tone with moderate hostility and sarcasm.",
				"Contains evident hostility and sarcasm that could disrupt productive conversation."},
			{7, "Level 7", "Toxic", "bg-orange-500",
				"Clearly hostile, aggressive language, minor insults.",
				"Contains aggressive language and insults that would likely shut down constructive dialogue."},
			{8, "Level 8", "Toxic", "bg-red-500",
				"Very hostile, significant insults and inflammatory language.",
				"Features significant insults and inflammatory language that would damage relationships."},
			{9, "Level 9", "Severe", "bg-red-600",
				"Extremely hostile, severe insults, potentially threatening language.",
				"Contains severe insults and implied threats that could cause serious harm to others."},
			{10, "Level 10", "Severe", "bg-red-700",
				"Maximum hostility, threats, harassment, or hate speech.",
				"Contains explicit threats, harassment, or hate speech that could lead to harm."},
		},
	}
}

// Dignity is the 8-point Dignity Index. Higher is better.
func Dignity() *Descriptor {
	return &Descriptor{
		Name:         "dignity",
		Title:        "The Dignity Index Scale",
		Summary:      "an 8-point scale from contempt (1) to dignity (8)",
		Min:          1,
		Max:          8,
		Direction:    AscendingDignity,
		DefaultScore: 5,
		LowLabel:     "Contempt",
		HighLabel:    "Dignity",
		Bands: []Band{
			{Category: "contempt", Label: "Contempt", Min: 1, Max: 4, Badge: "destructive", ScoreColor: "text-red-600"},
			{Category: "dignity", Label: "Dignity", Min: 5, Max: 8, Badge: "success", ScoreColor: "text-green-600"},
		},
		Levels: []Level{
			{1, "Level 1", "Contempt", "bg-red-600",
				"Escalates from violent words to violent actions. Views others as less than human and calls for violence.",
				"They're not even human. It's our moral duty to destroy them before they destroy us."},
			{2, "Level 2", "Contempt", "bg-red-500",
				"Accuses the other side of promoting evil, not just doing bad.",
				"Those people are evil and they're going to ruin everything if we let them. It's us or them."},
			{3, "Level 3", "Contempt", "bg-orange-500",
				"Attacks the other side's moral character, not just capabilities.",
				"We're the good people and they're the bad people. It's us vs. them."},
			{4, "Level 4", "Contempt", "bg-amber-500",
				"Mocks and attacks the other side's background, beliefs, commitment, or competence.",
				"We're better than those people. They don't really belong. They're not one of us."},
			{5, "Level 5", "Dignity", "bg-blue-500",
				"Listens to other views and respectfully explains own goals and plans.",
				"The other side has a right to be here and a right to be heard. They belong here too."},
			{6, "Level 6", "Dignity", "bg-blue-600",
				"Sees working with others to find common ground as a welcome duty.",
				"We always talk to the other side, searching for the values and interests we share."},
			{7, "Level 7", "Dignity", "bg-green-500",
				"Wants to fully engage the other side to discuss deep disagreements.",
				"We fully engage with the other side, discussing even values and interests we don't share, open to admitting mistakes or changing our minds."},
			{8, "Level 8", "Dignity", "bg-green-600",
				"Sees oneself in every human being and offers dignity to everyone.",
				"Each one of us is born with inherent worth, so we treat everyone with dignity--no matter what."},
		},
	}
}
