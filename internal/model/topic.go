package model

// OtherTopic selects a free-form custom topic
const OtherTopic = "Other"

// ControversialTopics are the topics offered by the topic picker
var ControversialTopics = []string{
	"Abortion Rights",
	"Gun Control",
	"Immigration Reform",
	"Climate Change Policy",
	"Healthcare Reform",
	"Tax Policy",
	"Election Integrity",
	"LGBTQ+ Rights",
	"Police Reform",
	"Welfare Programs",
	"Income Inequality",
	"Education Policy",
	"Foreign Policy",
	"Vaccine Mandates",
	"Marijuana Legalization",
	"Religious Freedom",
	"Racial Equity",
	"Free Speech",
	"Supreme Court Reform",
	"Military Spending",
}
