package model

// 每个系统的图标与三段科普视频。
var (
	systemIcons = map[string]string{
		"integumentary":  "🛡️",
		"skeletal":       "🦴",
		"muscular":       "💪",
		"nervous":        "🧠",
		"endocrine":      "⚗️",
		"cardiovascular": "❤️",
		"lymphatic":      "🛡️",
		"respiratory":    "🫁",
		"digestive":      "🍎",
		"urinary":        "💧",
		"reproductive":   "🌸",
	}

	systemVideos = map[string][]HealthVideo{
		"integumentary": {
			{Title: "Understanding Your Skin: The Integumentary System", URL: "https://www.youtube.com/watch?v=6jQkxsXFts8", Duration: "8:45", Description: "Learn about skin structure, function, and how to maintain healthy skin"},
			{Title: "Skin Care Routine for Busy Professionals", URL: "https://www.youtube.com/watch?v=voFZSHKdKTc", Duration: "12:30", Description: "Quick and effective skincare tips for people with demanding schedules"},
			{Title: "Sun Protection and Skin Health", URL: "https://www.youtube.com/watch?v=o9BqrSAHbTc", Duration: "6:15", Description: "Essential guide to protecting your skin from UV damage"},
		},
		"skeletal": {
			{Title: "Bone Health: Building Strong Bones", URL: "https://www.youtube.com/watch?v=g9JBNiu8_-I", Duration: "10:22", Description: "Understanding bone structure and how to maintain bone density"},
			{Title: "Joint Health and Mobility Exercises", URL: "https://www.youtube.com/watch?v=2HOCBaIcjBo", Duration: "15:45", Description: "Simple exercises to maintain joint flexibility and prevent stiffness"},
			{Title: "Preventing Osteoporosis Through Lifestyle", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Duration: "9:30", Description: "Nutrition and exercise strategies for long-term bone health"},
		},
		"muscular": {
			{Title: "Muscle Anatomy and Function", URL: "https://www.youtube.com/watch?v=VmcQfCcGScY", Duration: "11:15", Description: "Complete guide to understanding how your muscles work"},
			{Title: "10-Minute Desk Exercises for Office Workers", URL: "https://www.youtube.com/watch?v=RqcOCBb4arc", Duration: "10:00", Description: "Quick muscle strengthening exercises you can do at work"},
			{Title: "Preventing Muscle Tension and Pain", URL: "https://www.youtube.com/watch?v=4BOTvaRaDjI", Duration: "8:30", Description: "Techniques to reduce muscle tension from prolonged sitting"},
		},
		"nervous": {
			{Title: "How Your Brain Works: Nervous System Explained", URL: "https://www.youtube.com/watch?v=qPix_X-9t7E", Duration: "13:20", Description: "Understanding brain function and nervous system basics"},
			{Title: "Stress Management for Busy Professionals", URL: "https://www.youtube.com/watch?v=hnpQrMqDoqE", Duration: "16:45", Description: "Evidence-based techniques to manage stress and improve mental health"},
			{Title: "Improving Sleep for Better Brain Health", URL: "https://www.youtube.com/watch?v=5MuIMqhT8DM", Duration: "12:10", Description: "Sleep hygiene tips to optimize cognitive function"},
		},
		"endocrine": {
			{Title: "Understanding Hormones and Your Health", URL: "https://www.youtube.com/watch?v=WVrlHH14q3o", Duration: "14:30", Description: "How hormones affect your daily life and long-term health"},
			{Title: "Balancing Hormones Through Diet and Lifestyle", URL: "https://www.youtube.com/watch?v=yJigWOOdmRU", Duration: "18:20", Description: "Natural ways to support healthy hormone production"},
			{Title: "Thyroid Health for Busy People", URL: "https://www.youtube.com/watch?v=1mK5XJye2qs", Duration: "11:45", Description: "Understanding thyroid function and maintaining thyroid health"},
		},
		"cardiovascular": {
			{Title: "Heart Health: How Your Cardiovascular System Works", URL: "https://www.youtube.com/watch?v=CWFyxn0qDEU", Duration: "9:45", Description: "Understanding your heart and blood circulation system"},
			{Title: "Cardio Exercises for Busy Schedules", URL: "https://www.youtube.com/watch?v=ml6cT4AZdqI", Duration: "12:00", Description: "Effective cardiovascular workouts that fit into any schedule"},
			{Title: "Heart-Healthy Diet Tips", URL: "https://www.youtube.com/watch?v=TLpbfOJ4bJU", Duration: "15:30", Description: "Nutrition strategies to support cardiovascular health"},
		},
		"lymphatic": {
			{Title: "Your Immune System: Lymphatic System Explained", URL: "https://www.youtube.com/watch?v=GIJK3dwCWCw", Duration: "10:15", Description: "How your lymphatic system protects you from illness"},
			{Title: "Boosting Immunity Through Lifestyle", URL: "https://www.youtube.com/watch?v=Erp8IAUouus", Duration: "13:40", Description: "Natural ways to strengthen your immune system"},
			{Title: "Lymphatic Drainage and Detox", URL: "https://www.youtube.com/watch?v=QlZKsQkBP7w", Duration: "8:25", Description: "Simple techniques to support lymphatic drainage"},
		},
		"respiratory": {
			{Title: "How Your Lungs Work: Respiratory System", URL: "https://www.youtube.com/watch?v=mykrnTh1tz8", Duration: "11:30", Description: "Understanding breathing and lung function"},
			{Title: "Breathing Exercises for Stress Relief", URL: "https://www.youtube.com/watch?v=tybOi4hjZFQ", Duration: "7:20", Description: "Simple breathing techniques to reduce stress and improve focus"},
			{Title: "Improving Lung Health and Capacity", URL: "https://www.youtube.com/watch?v=4Prc1UfuokY", Duration: "14:15", Description: "Exercises and lifestyle tips for better respiratory health"},
		},
		"digestive": {
			{Title: "Your Digestive System: How It Works", URL: "https://www.youtube.com/watch?v=Og5xAdC8EUI", Duration: "12:45", Description: "Understanding digestion from mouth to intestines"},
			{Title: "Gut Health for Busy Professionals", URL: "https://www.youtube.com/watch?v=B7IAcUwPBQc", Duration: "16:20", Description: "Maintaining digestive health with a hectic schedule"},
			{Title: "Probiotics and Digestive Wellness", URL: "https://www.youtube.com/watch?v=eQtmQlQqUIw", Duration: "9:50", Description: "The role of beneficial bacteria in digestive health"},
		},
		"urinary": {
			{Title: "Kidney Function and Urinary System Health", URL: "https://www.youtube.com/watch?v=l128cMaIx2I", Duration: "10:35", Description: "How your kidneys filter waste and maintain fluid balance"},
			{Title: "Hydration: How Much Water Do You Really Need?", URL: "https://www.youtube.com/watch?v=9iMGFqMmUFs", Duration: "8:15", Description: "Understanding proper hydration for optimal kidney function"},
			{Title: "Preventing Kidney Stones and UTIs", URL: "https://www.youtube.com/watch?v=YMj4DGlHZac", Duration: "13:25", Description: "Lifestyle tips to prevent common urinary system problems"},
		},
		"reproductive": {
			{Title: "Reproductive Health Basics", URL: "https://www.youtube.com/watch?v=RjF_xfUll0I", Duration: "14:20", Description: "Understanding reproductive system health for all ages"},
			{Title: "Hormonal Health and Fertility", URL: "https://www.youtube.com/watch?v=szADvoTwmEo", Duration: "17:30", Description: "How lifestyle affects reproductive hormones and fertility"},
			{Title: "Reproductive Health Through Life Stages", URL: "https://www.youtube.com/watch?v=fM2qpBZ3nVw", Duration: "12:40", Description: "Maintaining reproductive health at different life stages"},
		},
	}
)
