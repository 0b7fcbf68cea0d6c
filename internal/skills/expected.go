package skills

import "github.com/spigell/cv-analyzer/internal/model"

var expectedSkills = map[model.ProfileType][]string{
	model.ProfileDeveloper: {
		"JavaScript", "TypeScript", "Python", "Java", "Go", "C#", "PHP", "React",
		"Angular", "Vue.js", "Node.js", "SQL", "Git", "Docker", "REST API", "HTML",
		"CSS", "Spring Boot", "Django", "Kubernetes", "AWS",
	},
	model.ProfileEngineering: {
		"AutoCAD", "SolidWorks", "MATLAB", "CATIA", "Revit", "ANSYS", "Simulink",
		"PLC", "LabVIEW", "Project Management", "Six Sigma", "Lean Manufacturing",
		"CAD", "Quality Control", "Arduino", "Embedded Systems",
	},
	model.ProfileData: {
		"Python", "R", "SQL", "Machine Learning", "Deep Learning", "TensorFlow",
		"PyTorch", "Pandas", "NumPy", "scikit-learn", "Tableau", "Power BI",
		"Statistics", "Spark", "Data Visualization", "Data Analysis",
	},
	model.ProfileDesigner: {
		"Figma", "Adobe XD", "Photoshop", "Illustrator", "InDesign", "Sketch",
		"UI Design", "UX Design", "Prototyping", "Wireframing", "User Research",
		"Typography", "After Effects", "Branding", "Graphic Design",
	},
	model.ProfileMarketing: {
		"SEO", "SEM", "Google Analytics", "Content Marketing", "Social Media",
		"Email Marketing", "Google Ads", "Copywriting", "HubSpot", "Branding",
		"Market Research", "Marketing Strategy", "Facebook Ads", "CRM",
		"Digital Marketing",
	},
	model.ProfileSales: {
		"CRM", "Salesforce", "Negotiation", "Lead Generation", "Business Development",
		"Account Management", "Cold Calling", "Customer Relationship", "Sales Strategy",
		"HubSpot", "Pipeline Management", "B2B", "Forecasting", "Communication",
	},
	model.ProfileGeneral: {
		"Microsoft Office", "Excel", "Word", "PowerPoint", "Project Management",
		"Communication", "Leadership", "Teamwork", "Problem Solving",
		"Time Management", "Customer Service", "Budgeting",
	},
}

var profileTools = map[model.ProfileType][]string{
	model.ProfileDeveloper: {
		"Git", "GitHub", "GitLab", "Docker", "Kubernetes", "Jenkins", "GitHub Actions",
		"CI/CD", "Terraform", "Ansible", "AWS", "Azure", "GCP", "Linux", "Jira",
		"Postman", "Maven", "Gradle", "Nginx", "Webpack",
	},
	model.ProfileEngineering: {
		"AutoCAD", "SolidWorks", "MATLAB", "CATIA", "ANSYS", "Revit", "LabVIEW",
		"Simulink", "Arduino", "Raspberry Pi", "Excel",
	},
	model.ProfileData: {
		"Tableau", "Power BI", "Jupyter", "Spark", "Hadoop", "Airflow", "Excel",
		"Git", "Docker", "AWS", "GCP", "Azure",
	},
	model.ProfileDesigner: {
		"Figma", "Adobe XD", "Photoshop", "Illustrator", "Sketch", "InDesign",
		"After Effects", "Premiere Pro", "Canva", "InVision", "Blender",
		"Adobe Creative Suite",
	},
	model.ProfileMarketing: {
		"Google Analytics", "HubSpot", "Mailchimp", "Hootsuite", "SEMrush",
		"Google Ads", "Facebook Ads", "WordPress", "Canva", "Salesforce", "Excel",
	},
	model.ProfileSales: {
		"Salesforce", "HubSpot", "CRM", "Excel", "LinkedIn Sales Navigator",
		"Pipedrive", "Zoho", "Microsoft Office", "PowerPoint",
	},
	model.ProfileGeneral: {
		"Microsoft Office", "Excel", "Word", "PowerPoint", "Outlook",
		"Google Workspace", "Jira", "Trello", "Slack", "Confluence",
	},
}

// ExpectedSkills lists the skills a rubric looks for in a profile. Unknown
// and professional profiles use the general list.
func ExpectedSkills(p model.ProfileType) []string {
	if list, ok := expectedSkills[p]; ok {
		return list
	}
	return expectedSkills[model.ProfileGeneral]
}

// Tools lists the tools a rubric looks for in a profile.
func Tools(p model.ProfileType) []string {
	if list, ok := profileTools[p]; ok {
		return list
	}
	return profileTools[model.ProfileGeneral]
}
