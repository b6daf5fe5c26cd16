package content

import (
	"github.com/portfolio/internal/db"
	"gorm.io/datatypes"
)

// 数据库为空时页面使用以下内置数据兜底，seed 命令默认也导入这些内容。

// SampleProjects returns the built-in project list, newest first.
func SampleProjects() []db.Project {
	return []db.Project{
		sampleProject(
			"Phenomenon 2024",
			"Web Development",
			"Website for Bangalore's biggest cultural and carnival fest. Led the UI design, built every animated component and set up the payments and registrations backend.",
			[]string{"React", "TypeScript", "Next.js", "Express.js", "Firebase", "Razorpay API", "UI/UX Design", "Frontend Development", "Backend Development"},
			"/static/assets/img/projects/phenomenon.svg",
			db.ProjectLinks{"Visit Website": "https://sjbhs.edu.in/phenomenon/"},
		),
		sampleProject(
			"SJBHSMUN 2024",
			"Web Development",
			"Website for a city-wide MUN conference with a custom UID system giving each delegate a unique identifier used across the conference.",
			[]string{"React", "TypeScript", "Next.js", "Express.js", "Razorpay API", "UID System Development", "Backend Architecture"},
			"/static/assets/img/projects/sjbhsmun.svg",
			db.ProjectLinks{"Visit Website": "https://sjbhs.edu.in/sjbhsmun/"},
		),
		sampleProject(
			"Bifrost 2024",
			"Web Development",
			"Designed, programmed and managed the website for the commerce fest, including the registrations backend coordinated across several teams.",
			[]string{"HTML5", "CSS3", "JavaScript", "Figma", "UI/UX Design", "Frontend Development"},
			"/static/assets/img/projects/bifrost.svg",
			db.ProjectLinks{"Visit Website": "https://sjbhs.edu.in/bifrost/"},
		),
		sampleProject(
			"Transcendence 2024",
			"Web Development",
			"Website for the international science, technology and eSports fest.",
			[]string{"HTML5", "CSS3", "JavaScript", "Figma", "UI/UX Design", "Frontend Development"},
			"/static/assets/img/projects/transcendence.svg",
			db.ProjectLinks{"Visit Website": "https://sjbhs.edu.in/transcendence/"},
		),
		sampleProject(
			"Personal Portfolio",
			"Web Development",
			"An interactive portfolio showcasing work across creative disciplines, with a theme system, smooth animations and responsive layouts.",
			[]string{"React", "TypeScript", "Tailwind CSS", "Framer Motion", "Shadcn/UI"},
			"/static/assets/img/projects/portfolio.svg",
			db.ProjectLinks{"Visit Profile": "https://linkedin.com/in/aayan-bothra-802999272"},
		),
		sampleProject(
			"Cinematic Fest Trailer",
			"Motion Design",
			"A fest trailer combining cinematography, motion graphics and sound design, built around visual-effects driven storytelling.",
			[]string{"Adobe After Effects", "Adobe Premiere Pro", "DaVinci Resolve", "Sound Design"},
			"/static/assets/img/projects/trailer.svg",
			db.ProjectLinks{"Watch Trailer": "https://youtu.be/_5I4BoBhLBU"},
		),
		sampleProject(
			"Melodic Rock Production",
			"Music Production",
			"A full rock production with melodic guitar work, programmed drums and layered instrumentation, mixed and mastered in house.",
			[]string{"FL Studio", "Electric Guitar", "Bass Guitar", "Piano/Keys", "Drum Programming"},
			"/static/assets/img/projects/rock.svg",
			db.ProjectLinks{"Watch on YouTube": "https://www.youtube.com/watch?v=ct-F5UsvdyM"},
		),
		sampleProject(
			"Brand Identity",
			"Graphic Design",
			"Complete brand identity for a tech startup: logo, color palette, typography system and brand guidelines.",
			[]string{"Adobe Illustrator", "Adobe Photoshop", "Figma"},
			"https://images.unsplash.com/photo-1626785774573-4b799315345d?q=80&w=2071&auto=format&fit=crop",
			db.ProjectLinks{"View on Dribbble": "https://dribbble.com/aayanbothra"},
		),
	}
}

func sampleProject(title, category, description string, technologies []string, thumbnail string, links db.ProjectLinks) db.Project {
	thumb := thumbnail
	return db.Project{
		Title:        title,
		Description:  description,
		Category:     category,
		Technologies: technologies,
		Thumbnail:    &thumb,
		Links:        datatypes.NewJSONType(links),
	}
}

// SampleSkills returns the built-in skill catalogue.
func SampleSkills() []db.Skill {
	return []db.Skill{
		{Name: "React", Category: "Development", Description: "Frontend library for building user interfaces", Proficiency: 95, Icon: "🧩"},
		{Name: "TypeScript", Category: "Development", Description: "Strongly typed programming language", Proficiency: 90, Icon: "📘"},
		{Name: "Next.js", Category: "Development", Description: "React framework for production", Proficiency: 85, Icon: "🚀"},
		{Name: "Express.js", Category: "Development", Description: "Web application framework for Node.js", Proficiency: 80, Icon: "🛠️"},
		{Name: "Firebase", Category: "Development", Description: "Platform for web and mobile app development", Proficiency: 85, Icon: "🔥"},
		{Name: "HTML5", Category: "Development", Description: "Markup language for web pages", Proficiency: 95, Icon: "🌐"},
		{Name: "CSS3", Category: "Development", Description: "Style sheet language", Proficiency: 90, Icon: "🎨"},
		{Name: "JavaScript", Category: "Development", Description: "Programming language for the web", Proficiency: 95, Icon: "📜"},
		{Name: "Python", Category: "Development", Description: "General-purpose programming language", Proficiency: 85, Icon: "🐍"},
		{Name: "OpenCV", Category: "Development", Description: "Computer vision library", Proficiency: 75, Icon: "👁️"},
		{Name: "UI/UX Design", Category: "Design", Description: "User interface & experience design", Proficiency: 90, Icon: "📱"},
		{Name: "Figma", Category: "Design", Description: "Collaborative interface design tool", Proficiency: 85, Icon: "🖌️"},
		{Name: "Adobe Photoshop", Category: "Design", Description: "Raster graphics editor", Proficiency: 80, Icon: "🖼️"},
		{Name: "Adobe Illustrator", Category: "Design", Description: "Vector graphics editor", Proficiency: 75, Icon: "✏️"},
		{Name: "Adobe After Effects", Category: "Design", Description: "Digital motion graphics and compositing", Proficiency: 85, Icon: "🎬"},
		{Name: "Adobe Premiere Pro", Category: "Design", Description: "Video editing software", Proficiency: 90, Icon: "🎥"},
		{Name: "DaVinci Resolve", Category: "Design", Description: "Color grading and video editing", Proficiency: 80, Icon: "🎞️"},
		{Name: "Logic Pro X", Category: "Music", Description: "Digital audio workstation", Proficiency: 90, Icon: "🎵"},
		{Name: "FL Studio", Category: "Music", Description: "Digital audio workstation", Proficiency: 85, Icon: "🎹"},
		{Name: "Guitar", Category: "Music", Description: "Stringed instrument", Proficiency: 80, Icon: "🎸"},
		{Name: "Sound Design", Category: "Music", Description: "Creating audio elements", Proficiency: 80, Icon: "🔊"},
		{Name: "Team Leadership", Category: "Management", Description: "Leading and motivating teams", Proficiency: 90, Icon: "👥"},
		{Name: "Project Management", Category: "Management", Description: "Planning and overseeing projects", Proficiency: 85, Icon: "📋"},
		{Name: "Public Speaking", Category: "Communication", Description: "Presenting to audiences", Proficiency: 85, Icon: "🎤"},
		{Name: "Cinematography", Category: "Media", Description: "Art of motion-picture photography", Proficiency: 85, Icon: "🎦"},
		{Name: "Motion Graphics", Category: "Media", Description: "Animated graphic design", Proficiency: 85, Icon: "✨"},
	}
}

// SampleResume returns the built-in resume timeline.
func SampleResume() []db.ResumeEntry {
	return []db.ResumeEntry{
		{Type: "education", Title: "St. Joseph's Boys' High School", Description: "Class Rank: Top 10% (Decile)", Date: "Present", Icon: "education"},
		{
			Type:  "experience",
			Title: "Founder & CEO, Editors x Clients",
			Description: "Built an online media startup delivering edited content and graphics to over 300 creators.\n\n" +
				"Coordinated a team of 12 across task allocation, payments and deadlines.\n\n" +
				"Shipped the client-facing website with integrated payments.",
			Date: "September 2021 - Present",
			Icon: "work",
		},
		{
			Type:  "experience",
			Title: "Junior AI/ Machine Learning Intern at Intel Corporation",
			Description: "Prototyped a smart traffic light that detects pedestrians and obstacles.\n\n" +
				"Placed in the top three of Intel's National AI For Youth program.",
			Date: "August 2023 - September 2023",
			Icon: "work",
		},
		{
			Type:  "experience",
			Title: "Head of Media, Tech & Design at St. Joseph's Boys' High School",
			Description: "Mentored 20+ peers in filmmaking, design and web development.\n\n" +
				"Built and maintained the websites for four inter-school fests.",
			Date: "November 2023 - Present",
			Icon: "work",
		},
		{Type: "award", Title: "BGS World School Valedictorian", Description: "Top 2 of 57 (2023) - 97% Score", Date: "2023", Icon: "award"},
		{Type: "award", Title: "National Cyber Olympiad", Description: "Rank 1 in City, 17 in Country and 102 Internationally", Date: "2022", Icon: "award"},
		{Type: "award", Title: "UN Sustainable Project Award", Description: "Intel Corporation India & CBSE - Top 3 of 4000", Date: "2024", Icon: "award"},
	}
}
