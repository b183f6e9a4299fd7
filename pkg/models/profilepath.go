package models

// ProfilePath is the dotted identifier of one leaf in the profile data tree,
// e.g. "personal.firstName". The set of paths is finite and fixed at compile
// time; the pattern registry holds exactly one rule per path.
type ProfilePath string

const (
	PathFirstName   ProfilePath = "personal.firstName"
	PathLastName    ProfilePath = "personal.lastName"
	PathFullName    ProfilePath = "personal.fullName"
	PathEmail       ProfilePath = "personal.email"
	PathPhone       ProfilePath = "personal.phone"
	PathDateOfBirth ProfilePath = "personal.dateOfBirth"

	PathStreet  ProfilePath = "address.street"
	PathCity    ProfilePath = "address.city"
	PathState   ProfilePath = "address.state"
	PathZipCode ProfilePath = "address.zipCode"
	PathCountry ProfilePath = "address.country"

	PathCompany         ProfilePath = "work.currentCompany"
	PathJobTitle        ProfilePath = "work.currentTitle"
	PathYearsExperience ProfilePath = "work.yearsOfExperience"
	PathSkills          ProfilePath = "work.skills"

	PathSchool         ProfilePath = "education.school"
	PathDegree         ProfilePath = "education.degree"
	PathFieldOfStudy   ProfilePath = "education.fieldOfStudy"
	PathGPA            ProfilePath = "education.gpa"
	PathGraduationYear ProfilePath = "education.graduationYear"

	PathLinkedIn  ProfilePath = "links.linkedin"
	PathGitHub    ProfilePath = "links.github"
	PathPortfolio ProfilePath = "links.portfolio"
	PathWebsite   ProfilePath = "links.website"

	PathResume      ProfilePath = "documents.resume"
	PathCoverLetter ProfilePath = "documents.coverLetter"
)

func (p ProfilePath) String() string {
	return string(p)
}
