package service

import "strings"

// Role 是访客在首页选择的身份，仅用于切换展示文案。
type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleRecruiter Role = "recruiter"
	RoleStudent   Role = "student"
	RoleFan       Role = "fan"
)

// SiteOwner is the name highlighted in the default headline.
const SiteOwner = "Aayan Bothra"

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleVisitor, RoleRecruiter, RoleStudent, RoleFan}

// ParseRole 解析角色字符串，未知值返回 false。
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range Roles {
		if r == role {
			return r, true
		}
	}
	return "", false
}

// Experience is the role-specific copy shown in the hero section.
type Experience struct {
	Role         Role
	Headline     string
	Highlight    string
	Subheadline  string
	CTA          string
	MusicMessage string
}

// RoleOption describes a choice on the role selector.
type RoleOption struct {
	Role        Role
	Label       string
	Description string
}

var experienceCopy = map[Role]Experience{
	RoleVisitor: {
		Role:         RoleVisitor,
		Headline:     "Hello, I'm",
		Highlight:    SiteOwner,
		Subheadline:  "Editor • Motion Designer • Fullstack Developer • Musician",
		CTA:          "Explore My Work",
		MusicMessage: "Would you like some music for your scrolling journey?",
	},
	RoleRecruiter: {
		Role:         RoleRecruiter,
		Headline:     "Looking for Creative Tech Talent?",
		Subheadline:  "Fullstack Development • Motion Design • Multimedia Production",
		CTA:          "View My Projects",
		MusicMessage: "Would you like some music for your scrolling evaluation?",
	},
	RoleStudent: {
		Role:         RoleStudent,
		Headline:     "Learn & Explore With Me",
		Subheadline:  "Tutorials • Resources • Development Journey",
		CTA:          "Start Learning",
		MusicMessage: "Would you like some music for your scrolling study session?",
	},
	RoleFan: {
		Role:         RoleFan,
		Headline:     "Welcome to My Creative Universe",
		Subheadline:  "Music • Visual Art • Design • Code",
		CTA:          "See Latest Work",
		MusicMessage: "Would you like some music for your scrolling exploration?",
	},
}

// ExperienceCopy returns the copy for role, falling back to the visitor copy.
func ExperienceCopy(role Role) Experience {
	if exp, ok := experienceCopy[role]; ok {
		return exp
	}
	return experienceCopy[RoleVisitor]
}

// RoleOptions returns the selector entries.
func RoleOptions() []RoleOption {
	return []RoleOption{
		{Role: RoleVisitor, Label: "Visitor", Description: "Just exploring and want to see everything"},
		{Role: RoleRecruiter, Label: "Recruiter", Description: "Looking to hire talent for your team"},
		{Role: RoleStudent, Label: "Student", Description: "Interested in learning and resources"},
		{Role: RoleFan, Label: "Guest", Description: "Here for the creative work and updates"},
	}
}
