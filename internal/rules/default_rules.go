package rules

// DefaultRules returns the built-in rule table. Order matters: course codes
// and specific subjects come before broad document-type keywords so that,
// for example, "SOS-231 Essay" files under Social Sciences rather than Essays.
func DefaultRules() []Rule {
	return []Rule{
		// Course codes
		{`sos[-_ ]?231`, "Social Sciences"},
		{`ort[-_ ]?11[12]`, "Oral Communication"},
		{`comp[-_ ]?ii`, "Computer Science"},
		{`c\+\+`, "Computer Science"},
		{`python`, "Computer Science"},

		// History
		{`mansa.?musa`, "African History"},
		{`mali(an)?.*empire`, "African History"},
		{`african.*diaspora`, "African History"},
		{`egypt(ian)?`, "African History"},
		{`pharaoh`, "African History"},
		{`mesopotamia`, "World History"},
		{`fertile.?crescent`, "World History"},

		// Sciences and math
		{`physics`, "Physics Files"},
		{`newton`, "Physics Files"},
		{`quantum`, "Physics Files"},
		{`thermodynamics`, "Physics Files"},
		{`biology`, "Biology Coursework"},
		{`muscular`, "Biology Coursework"},
		{`digestive`, "Biology Coursework"},
		{`immune.*system`, "Biology Coursework"},
		{`organs`, "Biology Coursework"},
		{`calculus`, "Mathematics"},
		{`algorithm`, "Computer Science"},
		{`dijkstra`, "Computer Science"},
		{`kruskal`, "Computer Science"},

		// Career
		{`resume`, "Resume"},
		{`cv\b`, "Resume"},
		{`curriculum.?vitae`, "Resume"},
		{`cover[_\s]?letter`, "Job Applications"},
		{`application`, "Job Applications"},
		{`internship`, "Job Applications"},
		{`job.*description`, "Job Applications"},
		{`interview`, "Interview Prep"},
		{`behavioral.*interview`, "Interview Prep"},

		// Programs and competitions
		{`treehacks`, "Hackathon Projects"},
		{`nexhacks`, "Hackathon Projects"},
		{`hackathon`, "Hackathon Projects"},
		{`microsoft`, "Job Applications"},
		{`google`, "Job Applications"},
		{`uber`, "Job Applications"},
		{`meta\b`, "Job Applications"},
		{`amazon`, "Job Applications"},
		{`d\.?e\.?\s*shaw`, "Job Applications"},
		{`codepath`, "Tech Programs"},
		{`code2040`, "Tech Programs"},
		{`new.?technologists`, "Tech Programs"},

		// Organizations
		{`\bisa\b`, "ISA Documents"},
		{`international.*student`, "ISA Documents"},
		{`\bgdsc\b`, "GDSC Documents"},
		{`google.*developer`, "GDSC Documents"},

		// Coursework by document type
		{`study.?notes`, "Course Notes"},
		{`notes`, "Course Notes"},
		{`lecture`, "Course Notes"},
		{`assignment`, "Course Notes"},
		{`homework`, "Course Notes"},
		{`\bquiz\b`, "Course Notes"},
		{`\bexam\b`, "Course Notes"},
		{`\bessay\b`, "Essays"},
		{`research.*paper`, "Research Papers"},
		{`speech`, "Speech Class"},
		{`presentation`, "Presentations"},

		// Finances
		{`receipt`, "Financial Records"},
		{`invoice`, "Financial Records"},
		{`budget`, "Financial Records"},
		{`tax`, "Financial Records"},
		{`bank`, "Financial Records"},
		{`statement`, "Financial Records"},

		// Personal records
		{`transcript`, "Personal Documents"},
		{`certificate`, "Certificates"},
		{`certification`, "Certificates"},
		{`diploma`, "Certificates"},
		{`recommendation`, "Recommendations"},
		{`reference`, "Recommendations"},

		// Media
		{`photo`, "Photos"},
		{`\bimg\b`, "Photos"},
		{`image`, "Photos"},
		{`\.jpe?g$`, "Photos"},
		{`\.png$`, "Photos"},
		{`screenshot`, "Screenshots"},
		{`screen.?recording`, "Screen Recordings"},
		{`\.mp4$`, "Videos"},
		{`\.mov$`, "Videos"},
		{`vid[-_]`, "Videos"},

		// Projects
		{`project`, "Projects"},
		{`github`, "Projects"},
		{`firebase`, "Projects"},
	}
}
