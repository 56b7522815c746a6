package service

import "gamelearn/internal/domain"

// CourseCatalog returns the built-in course catalog. Level and module
// order is the canonical traversal order used for recommendations.
func CourseCatalog() []domain.Course {
	return []domain.Course{
		{
			ID:             "python",
			Name:           "Python Programming",
			Description:    "Learn Python from the ground up, from variables to building real projects",
			Icon:           "python",
			Difficulty:     "beginner",
			EstimatedHours: 24,
			Tags:           []string{"programming", "backend"},
			Levels: []domain.Level{
				{
					ID:    "python-basics",
					Title: "Python Basics",
					Modules: []domain.Module{
						{
							ID:               "variables",
							Title:            "Variables and Data Types",
							Content:          "Numbers, strings, booleans and how Python stores them",
							EstimatedMinutes: 45,
							Exercises: []domain.Exercise{
								{ID: "variables-ex1", Title: "Declare and print", Points: 10, EstimatedMinutes: 10, Type: "practice"},
								{ID: "variables-ex2", Title: "Type conversions", Points: 15, EstimatedMinutes: 15, Type: "practice"},
							},
						},
						{
							ID:               "control-flow",
							Title:            "Control Flow",
							Content:          "Branching with if/elif/else and looping with for and while",
							EstimatedMinutes: 60,
							Exercises: []domain.Exercise{
								{ID: "control-ex1", Title: "FizzBuzz", Points: 20, EstimatedMinutes: 20, Type: "challenge"},
							},
						},
						{
							ID:               "functions",
							Title:            "Functions",
							Content:          "Defining functions, arguments, return values and scope",
							EstimatedMinutes: 60,
							Exercises: []domain.Exercise{
								{ID: "functions-ex1", Title: "Write a calculator", Points: 25, EstimatedMinutes: 30, Type: "challenge"},
							},
						},
					},
				},
				{
					ID:    "python-intermediate",
					Title: "Intermediate Python",
					Modules: []domain.Module{
						{
							ID:               "data-structures",
							Title:            "Lists, Dicts and Sets",
							Content:          "Collection types and when to reach for each",
							EstimatedMinutes: 75,
							Exercises: []domain.Exercise{
								{ID: "ds-ex1", Title: "Word frequency counter", Points: 30, EstimatedMinutes: 25, Type: "challenge"},
							},
						},
						{
							ID:               "classes",
							Title:            "Classes and Objects",
							Content:          "Object-oriented programming in Python",
							EstimatedMinutes: 90,
							Exercises: []domain.Exercise{
								{ID: "classes-ex1", Title: "Model a bank account", Points: 35, EstimatedMinutes: 35, Type: "project"},
							},
						},
					},
				},
			},
		},
		{
			ID:             "webdev",
			Name:           "Web Development",
			Description:    "HTML, CSS and the building blocks of the web",
			Icon:           "globe",
			Difficulty:     "beginner",
			EstimatedHours: 18,
			Tags:           []string{"frontend", "html", "css"},
			Levels: []domain.Level{
				{
					ID:    "webdev-foundations",
					Title: "Foundations",
					Modules: []domain.Module{
						{
							ID:               "html-basics",
							Title:            "HTML Basics",
							Content:          "Elements, attributes and document structure",
							EstimatedMinutes: 50,
							Exercises: []domain.Exercise{
								{ID: "html-ex1", Title: "Build a profile page", Points: 15, EstimatedMinutes: 20, Type: "practice"},
							},
						},
						{
							ID:               "css-basics",
							Title:            "CSS Basics",
							Content:          "Selectors, the box model and layout",
							EstimatedMinutes: 60,
							Exercises: []domain.Exercise{
								{ID: "css-ex1", Title: "Style the profile page", Points: 20, EstimatedMinutes: 25, Type: "practice"},
							},
						},
					},
				},
				{
					ID:    "webdev-layout",
					Title: "Modern Layout",
					Modules: []domain.Module{
						{
							ID:               "flexbox",
							Title:            "Flexbox",
							Content:          "One-dimensional layout with flex containers",
							EstimatedMinutes: 55,
							Exercises: []domain.Exercise{
								{ID: "flex-ex1", Title: "Responsive navbar", Points: 25, EstimatedMinutes: 30, Type: "challenge"},
							},
						},
					},
				},
			},
		},
		{
			ID:             "javascript",
			Name:           "JavaScript Essentials",
			Description:    "The language of the browser, from syntax to the DOM",
			Icon:           "js",
			Difficulty:     "intermediate",
			EstimatedHours: 20,
			Tags:           []string{"programming", "frontend"},
			Levels: []domain.Level{
				{
					ID:    "js-core",
					Title: "Core Language",
					Modules: []domain.Module{
						{
							ID:               "js-syntax",
							Title:            "Syntax and Types",
							Content:          "let, const, primitives and coercion",
							EstimatedMinutes: 45,
							Exercises: []domain.Exercise{
								{ID: "js-ex1", Title: "Type quiz warmup", Points: 10, EstimatedMinutes: 15, Type: "practice"},
							},
						},
						{
							ID:               "js-dom",
							Title:            "Working with the DOM",
							Content:          "Selecting, creating and updating elements",
							EstimatedMinutes: 70,
							Exercises: []domain.Exercise{
								{ID: "js-ex2", Title: "Interactive todo list", Points: 40, EstimatedMinutes: 45, Type: "project"},
							},
						},
					},
				},
			},
		},
	}
}

// moduleQuizBank maps module IDs to their single-question quizzes.
func moduleQuizBank() map[string]domain.ModuleQuiz {
	return map[string]domain.ModuleQuiz{
		"variables": {
			ModuleID:     "variables",
			Question:     "Which of these is a valid Python variable name?",
			Options:      []string{"2nd_place", "my-var", "total_count", "class"},
			CorrectIndex: 2,
		},
		"control-flow": {
			ModuleID:     "control-flow",
			Question:     "What does a while loop do when its condition is False on entry?",
			Options:      []string{"Runs once", "Never runs", "Raises an error", "Runs forever"},
			CorrectIndex: 1,
		},
		"functions": {
			ModuleID:     "functions",
			Question:     "What does a function without a return statement return?",
			Options:      []string{"0", "an empty string", "None", "False"},
			CorrectIndex: 2,
		},
		"html-basics": {
			ModuleID:     "html-basics",
			Question:     "Which element holds the visible content of a page?",
			Options:      []string{"<head>", "<body>", "<meta>", "<title>"},
			CorrectIndex: 1,
		},
		"css-basics": {
			ModuleID:     "css-basics",
			Question:     "Which property controls the space outside an element's border?",
			Options:      []string{"padding", "spacing", "margin", "gap"},
			CorrectIndex: 2,
		},
		"js-syntax": {
			ModuleID:     "js-syntax",
			Question:     "What is the result of typeof null in JavaScript?",
			Options:      []string{"\"null\"", "\"undefined\"", "\"object\"", "\"boolean\""},
			CorrectIndex: 2,
		},
	}
}
