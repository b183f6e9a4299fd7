package registry

import "github.com/formweave/aster/pkg/models"

// rules is the full pattern table in declaration order. Order matters: the
// field matcher iterates rules top to bottom and an exact score tie keeps the
// earliest rule, so reordering entries changes observable output.
var rules = []PatternRule{
	{
		ProfilePath:        models.PathFirstName,
		Phrases:            []string{"first name", "given name", "first", "fname", "forename"},
		AcceptedInputTypes: []string{"text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"last", "surname", "family", "middle"},
	},
	{
		ProfilePath:        models.PathLastName,
		Phrases:            []string{"last name", "surname", "family name", "last", "lname"},
		AcceptedInputTypes: []string{"text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"first", "given", "middle"},
	},
	{
		ProfilePath:        models.PathFullName,
		Phrases:            []string{"full name", "name", "your name", "complete name", "legal name"},
		AcceptedInputTypes: []string{"text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"first", "last", "middle", "user", "company"},
	},
	{
		ProfilePath:        models.PathEmail,
		Phrases:            []string{"email", "email address", "e mail", "work email", "contact email"},
		AcceptedInputTypes: []string{"email", "text"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathPhone,
		Phrases:            []string{"phone", "phone number", "telephone", "mobile", "mobile number", "cell phone", "contact number"},
		AcceptedInputTypes: []string{"tel", "text", "number"},
		Weight:             1.0,
		NegativeKeywords:   []string{"fax"},
	},
	{
		ProfilePath:        models.PathDateOfBirth,
		Phrases:            []string{"date of birth", "birth date", "birthday", "dob"},
		AcceptedInputTypes: []string{"date", "text"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathStreet,
		Phrases:            []string{"street address", "address", "address line 1", "street", "mailing address", "home address"},
		AcceptedInputTypes: []string{"text", "textarea"},
		Weight:             1.0,
		NegativeKeywords:   []string{"email", "line 2"},
	},
	{
		ProfilePath:        models.PathCity,
		Phrases:            []string{"city", "town", "locality"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathState,
		Phrases:            []string{"state", "province", "region", "state province"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathZipCode,
		Phrases:            []string{"zip", "zip code", "postal code", "postcode", "zipcode", "postal"},
		AcceptedInputTypes: []string{"text", "number"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathCountry,
		Phrases:            []string{"country", "nation", "country region"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathCompany,
		Phrases:            []string{"company", "current company", "employer", "company name", "organization"},
		AcceptedInputTypes: []string{"text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"previous", "former"},
	},
	{
		ProfilePath:        models.PathJobTitle,
		Phrases:            []string{"job title", "title", "current title", "position", "role", "occupation"},
		AcceptedInputTypes: []string{"text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"salutation"},
	},
	{
		ProfilePath:        models.PathYearsExperience,
		Phrases:            []string{"years of experience", "experience", "years experience", "total experience"},
		AcceptedInputTypes: []string{"number", "text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathSkills,
		Phrases:            []string{"skills", "key skills", "technical skills", "competencies", "expertise"},
		AcceptedInputTypes: []string{"text", "textarea"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathSchool,
		Phrases:            []string{"school", "university", "college", "institution", "school name", "alma mater"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathDegree,
		Phrases:            []string{"degree", "qualification", "education level", "highest degree"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathFieldOfStudy,
		Phrases:            []string{"field of study", "major", "specialization", "discipline", "course of study"},
		AcceptedInputTypes: []string{"text", "select"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathGPA,
		Phrases:            []string{"gpa", "grade point average", "cgpa", "grades"},
		AcceptedInputTypes: []string{"text", "number"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathGraduationYear,
		Phrases:            []string{"graduation year", "year of graduation", "grad year", "graduation date", "completion year"},
		AcceptedInputTypes: []string{"number", "text", "select", "date"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathLinkedIn,
		Phrases:            []string{"linkedin", "linkedin url", "linkedin profile"},
		AcceptedInputTypes: []string{"url", "text"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathGitHub,
		Phrases:            []string{"github", "github url", "github profile"},
		AcceptedInputTypes: []string{"url", "text"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathPortfolio,
		Phrases:            []string{"portfolio", "portfolio url", "portfolio link", "personal site"},
		AcceptedInputTypes: []string{"url", "text"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathWebsite,
		Phrases:            []string{"website", "personal website", "homepage", "web site", "url"},
		AcceptedInputTypes: []string{"url", "text"},
		Weight:             1.0,
		NegativeKeywords:   []string{"linkedin", "github", "portfolio", "company"},
	},
	{
		ProfilePath:        models.PathResume,
		Phrases:            []string{"resume", "cv", "curriculum vitae", "upload resume", "attach resume"},
		AcceptedInputTypes: []string{"file"},
		Weight:             1.0,
	},
	{
		ProfilePath:        models.PathCoverLetter,
		Phrases:            []string{"cover letter", "coverletter", "motivation letter", "letter of motivation"},
		AcceptedInputTypes: []string{"textarea", "file", "text"},
		Weight:             1.0,
	},
}
