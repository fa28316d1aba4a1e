package patterns

import "github.com/filmozolevskiy/job-etl-project-sub001/internal/model"

// Built-in vocabularies. These seed the dictionaries; deployments extend them
// through the YAML overlay file.

var defaultSkills = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c++", "c#", "ruby", "php", "scala", "kotlin", "swift", "sql",
	"react", "angular", "vue", "node.js", "django", "flask", "spring",
	"rails", "graphql", "rest",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"rabbitmq", "snowflake", "dbt", "airflow", "spark", "hadoop",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "git", "linux", "ci/cd",
	"machine learning", "deep learning", "nlp", "pandas", "numpy",
	"tensorflow", "pytorch", "scikit-learn", "tableau", "power bi",
	"excel", "etl", "data warehouse", "data modeling",
}

var defaultSeniority = map[model.SeniorityLevel][]string{
	model.SeniorityIntern: {
		"intern", "internship", "co-op", "coop", "trainee", "apprentice",
	},
	model.SeniorityJunior: {
		"junior", "jr", "entry level", "entry-level", "graduate",
		"early career", "associate",
	},
	model.SeniorityMid: {
		"mid level", "mid-level", "intermediate", "experienced",
	},
	model.SenioritySenior: {
		"senior", "sr", "staff", "principal", "lead",
	},
	model.SeniorityExecutive: {
		"director", "vp", "vice president", "head of", "chief", "cto",
		"ceo", "executive",
	},
}

var defaultRemote = map[model.RemoteType][]string{
	model.RemoteTypeRemote: {
		"fully remote", "100% remote", "remote first", "remote-first",
		"work from home", "work from anywhere", "wfh", "remote",
	},
	model.RemoteTypeHybrid: {
		"hybrid work", "hybrid schedule", "hybrid",
	},
	model.RemoteTypeOnsite: {
		"on-site", "onsite", "on site", "in office", "in-office",
	},
}

// defaultStopWords filters common English words that add noise to n-gram
// discovery.
var defaultStopWords = []string{
	"and", "the", "for", "with", "you", "are", "have", "will", "this",
	"that", "from", "our", "your", "their", "they", "about", "which",
	"what", "who", "how", "can", "not", "but", "all", "also", "more",
	"than", "into", "has", "its", "was", "were", "been", "each", "new",
	"use", "using", "used", "well", "able", "get", "set", "such", "we",
	"is", "of", "to", "in", "on", "at", "as", "an", "or", "be", "by",
	"it", "a", "per", "via", "etc", "work", "team", "role", "job",
	"join", "company", "position", "candidate", "years", "experience",
	"required", "requirements", "responsibilities", "including",
	"ability", "strong", "skills", "knowledge", "working", "looking",
	"must", "plus", "other", "across", "within", "related",
}
