package bank

import "assessly/internal/domain"

// seedQuestions is the built-in fallback content. Three questions per
// (category, difficulty) cell.
var seedQuestions = []domain.Question{
	// technical / easy
	{
		ID: "bank-tech-easy-01", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyEasy,
		Text:          "Which data structure operates on a first-in, first-out basis?",
		Options:       []string{"Stack", "Queue", "Tree", "Graph"},
		CorrectAnswer: "Queue",
		Explanation:   "A queue processes elements in the order they were added: the first element enqueued is the first dequeued.",
	},
	{
		ID: "bank-tech-easy-02", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyEasy,
		Text:          "What does HTML stand for?",
		Options:       []string{"HyperText Markup Language", "HighText Machine Language", "Hyperlink Text Mode Language", "Home Tool Markup Language"},
		CorrectAnswer: "HyperText Markup Language",
		Explanation:   "HTML is the standard markup language for documents displayed in a web browser.",
	},
	{
		ID: "bank-tech-easy-03", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyEasy,
		Text:          "Which unit measures the clock speed of a processor?",
		Options:       []string{"Gigabyte", "Hertz", "Watt", "Pixel"},
		CorrectAnswer: "Hertz",
		Explanation:   "Clock speed counts cycles per second, measured in hertz; modern CPUs run at billions of cycles per second (GHz).",
	},

	// technical / medium
	{
		ID: "bank-tech-med-01", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyMedium,
		Text:          "What is the average time complexity of looking up a key in a hash table?",
		Options:       []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"},
		CorrectAnswer: "O(1)",
		Explanation:   "With a good hash function and load factor, a hash table resolves a key to its bucket in constant time on average.",
	},
	{
		ID: "bank-tech-med-02", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyMedium,
		Text:          "In relational databases, what does a foreign key enforce?",
		Options:       []string{"Uniqueness of rows", "Referential integrity between tables", "Automatic indexing", "Column encryption"},
		CorrectAnswer: "Referential integrity between tables",
		Explanation:   "A foreign key constrains values in one table to match primary key values in another, keeping references consistent.",
	},
	{
		ID: "bank-tech-med-03", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyMedium,
		Text:          "Which protocol guarantees ordered, reliable delivery of a byte stream?",
		Options:       []string{"UDP", "TCP", "ICMP", "ARP"},
		CorrectAnswer: "TCP",
		Explanation:   "TCP provides acknowledgements, retransmission and sequencing, unlike UDP which is connectionless and unreliable.",
	},

	// technical / hard
	{
		ID: "bank-tech-hard-01", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyHard,
		Text:          "Which property is NOT guaranteed by a system that is eventually consistent?",
		Options:       []string{"Availability under partition", "Reads always reflect the latest write", "Convergence of replicas", "Low write latency"},
		CorrectAnswer: "Reads always reflect the latest write",
		Explanation:   "Eventual consistency allows stale reads; replicas converge over time but a read may miss the most recent write.",
	},
	{
		ID: "bank-tech-hard-02", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyHard,
		Text:          "What is the worst-case time complexity of quicksort with a naive pivot choice?",
		Options:       []string{"O(n)", "O(n log n)", "O(n^2)", "O(log n)"},
		CorrectAnswer: "O(n^2)",
		Explanation:   "Already-sorted input with a first-element pivot degenerates quicksort into n nested partitions of size n-1, n-2, and so on.",
	},
	{
		ID: "bank-tech-hard-03", Category: domain.CategoryTechnical, Difficulty: domain.DifficultyHard,
		Text:          "In public-key cryptography, what is the role of the private key in a digital signature?",
		Options:       []string{"It encrypts the message for the recipient", "It signs the message digest so anyone can verify origin", "It derives the session key", "It compresses the payload"},
		CorrectAnswer: "It signs the message digest so anyone can verify origin",
		Explanation:   "The signer encrypts a hash of the message with the private key; holders of the public key can verify both origin and integrity.",
	},

	// analytical / easy
	{
		ID: "bank-ana-easy-01", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyEasy,
		Text:          "If all roses are flowers and some flowers fade quickly, which statement must be true?",
		Options:       []string{"All roses fade quickly", "Some roses are flowers that fade", "All roses are flowers", "No roses fade quickly"},
		CorrectAnswer: "All roses are flowers",
		Explanation:   "Only the restatement of the first premise is logically entailed; the fading property applies to an unspecified subset.",
	},
	{
		ID: "bank-ana-easy-02", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyEasy,
		Text:          "What is the next number in the sequence 2, 4, 8, 16?",
		Options:       []string{"18", "24", "32", "20"},
		CorrectAnswer: "32",
		Explanation:   "Each term doubles the previous one, so the next term is 16 times 2.",
	},
	{
		ID: "bank-ana-easy-03", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyEasy,
		Text:          "A bar chart is most appropriate for which kind of comparison?",
		Options:       []string{"Parts of a whole", "Discrete categories", "Continuous change over time", "Correlation between two variables"},
		CorrectAnswer: "Discrete categories",
		Explanation:   "Bars compare magnitudes across distinct categories; lines suit trends and scatter plots suit correlation.",
	},

	// analytical / medium
	{
		ID: "bank-ana-med-01", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyMedium,
		Text:          "A fair coin is flipped three times. What is the probability of getting exactly two heads?",
		Options:       []string{"1/8", "3/8", "1/2", "2/3"},
		CorrectAnswer: "3/8",
		Explanation:   "Three of the eight equally likely outcomes (HHT, HTH, THH) contain exactly two heads.",
	},
	{
		ID: "bank-ana-med-02", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyMedium,
		Text:          "Which error does a control group in an experiment primarily guard against?",
		Options:       []string{"Measurement noise", "Confounding effects", "Small sample size", "Publication bias"},
		CorrectAnswer: "Confounding effects",
		Explanation:   "Comparing against an untreated group isolates the treatment effect from other variables acting on both groups.",
	},
	{
		ID: "bank-ana-med-03", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyMedium,
		Text:          "If the mean of five numbers is 12 and four of them are 10, 11, 13 and 14, what is the fifth?",
		Options:       []string{"10", "12", "14", "16"},
		CorrectAnswer: "12",
		Explanation:   "The five numbers must sum to 60; the four known values sum to 48, leaving 12.",
	},

	// analytical / hard
	{
		ID: "bank-ana-hard-01", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyHard,
		Text:          "A test for a disease is 99% accurate and the disease affects 1 in 1000 people. Roughly what fraction of positive results are true positives?",
		Options:       []string{"About 9%", "About 50%", "About 90%", "About 99%"},
		CorrectAnswer: "About 9%",
		Explanation:   "With base rate 0.1%, roughly 10 false positives occur for every true positive, so only about one in eleven positives is real.",
	},
	{
		ID: "bank-ana-hard-02", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyHard,
		Text:          "Which reasoning flaw does the statement 'sales rose after the campaign, so the campaign caused the rise' exhibit?",
		Options:       []string{"Circular reasoning", "Post hoc ergo propter hoc", "Straw man", "False dilemma"},
		CorrectAnswer: "Post hoc ergo propter hoc",
		Explanation:   "Temporal succession alone does not establish causation; other factors could explain the rise.",
	},
	{
		ID: "bank-ana-hard-03", Category: domain.CategoryAnalytical, Difficulty: domain.DifficultyHard,
		Text:          "In a room of 23 people, the probability that two share a birthday is closest to which value?",
		Options:       []string{"6%", "25%", "50%", "95%"},
		CorrectAnswer: "50%",
		Explanation:   "The birthday problem: with 23 people the pairwise collision probability crosses one half, far earlier than intuition suggests.",
	},

	// communication / easy
	{
		ID: "bank-com-easy-01", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyEasy,
		Text:          "What is the primary purpose of an executive summary?",
		Options:       []string{"To list every detail of a report", "To condense key findings for quick reading", "To cite all sources", "To entertain the reader"},
		CorrectAnswer: "To condense key findings for quick reading",
		Explanation:   "An executive summary gives decision-makers the essential findings and recommendations without the full detail.",
	},
	{
		ID: "bank-com-easy-02", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyEasy,
		Text:          "Which of these is an example of active listening?",
		Options:       []string{"Planning your reply while the other person talks", "Paraphrasing what the speaker said", "Checking your phone", "Interrupting with your opinion"},
		CorrectAnswer: "Paraphrasing what the speaker said",
		Explanation:   "Restating the speaker's point confirms understanding and signals attention.",
	},
	{
		ID: "bank-com-easy-03", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyEasy,
		Text:          "In written communication, what does the term 'audience' refer to?",
		Options:       []string{"The document's length", "The intended readers", "The publishing platform", "The author's credentials"},
		CorrectAnswer: "The intended readers",
		Explanation:   "Effective writing adapts tone, vocabulary and structure to the people expected to read it.",
	},

	// communication / medium
	{
		ID: "bank-com-med-01", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyMedium,
		Text:          "Which structure orders a persuasive argument most effectively?",
		Options:       []string{"Evidence, claim, counterargument ignored", "Claim, supporting evidence, addressed counterargument", "Counterargument only", "Anecdotes without a claim"},
		CorrectAnswer: "Claim, supporting evidence, addressed counterargument",
		Explanation:   "Stating the claim, backing it with evidence and engaging the strongest objection is the classical persuasive arc.",
	},
	{
		ID: "bank-com-med-02", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyMedium,
		Text:          "What does 'signposting' mean in a presentation?",
		Options:       []string{"Using physical props", "Verbal cues that mark the talk's structure", "Speaking louder at key points", "Displaying the agenda once"},
		CorrectAnswer: "Verbal cues that mark the talk's structure",
		Explanation:   "Phrases like 'first', 'turning to' and 'to conclude' help listeners track where they are in the argument.",
	},
	{
		ID: "bank-com-med-03", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyMedium,
		Text:          "When giving critical feedback, which approach is generally most constructive?",
		Options:       []string{"Focus on the person's character", "Describe specific behavior and its impact", "Deliver it publicly for accountability", "Save it all for the annual review"},
		CorrectAnswer: "Describe specific behavior and its impact",
		Explanation:   "Behavior-focused, timely feedback is actionable; character judgments provoke defensiveness.",
	},

	// communication / hard
	{
		ID: "bank-com-hard-01", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyHard,
		Text:          "In negotiation, what is a BATNA?",
		Options:       []string{"The opening offer", "The best alternative to a negotiated agreement", "A binding arbitration clause", "The final concession"},
		CorrectAnswer: "The best alternative to a negotiated agreement",
		Explanation:   "Knowing your best fallback option defines your walk-away point and bargaining power.",
	},
	{
		ID: "bank-com-hard-02", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyHard,
		Text:          "Which rhetorical appeal relies on the speaker's credibility?",
		Options:       []string{"Pathos", "Logos", "Ethos", "Kairos"},
		CorrectAnswer: "Ethos",
		Explanation:   "Ethos persuades through the character and authority of the speaker; logos uses logic and pathos emotion.",
	},
	{
		ID: "bank-com-hard-03", Category: domain.CategoryCommunication, Difficulty: domain.DifficultyHard,
		Text:          "What distinguishes high-context from low-context communication cultures?",
		Options:       []string{"Volume of speech", "Reliance on implicit shared understanding versus explicit statements", "Use of written contracts", "Formality of dress"},
		CorrectAnswer: "Reliance on implicit shared understanding versus explicit statements",
		Explanation:   "High-context cultures encode much of the message in relationships and situation; low-context cultures spell it out.",
	},

	// general_knowledge / easy
	{
		ID: "bank-gen-easy-01", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyEasy,
		Text:          "Which planet is known as the Red Planet?",
		Options:       []string{"Venus", "Mars", "Jupiter", "Mercury"},
		CorrectAnswer: "Mars",
		Explanation:   "Iron oxide on its surface gives Mars its reddish appearance.",
	},
	{
		ID: "bank-gen-easy-02", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyEasy,
		Text:          "How many continents are there on Earth?",
		Options:       []string{"Five", "Six", "Seven", "Eight"},
		CorrectAnswer: "Seven",
		Explanation:   "The conventional count lists Africa, Antarctica, Asia, Australia, Europe, North America and South America.",
	},
	{
		ID: "bank-gen-easy-03", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyEasy,
		Text:          "What is the chemical symbol for water?",
		Options:       []string{"O2", "H2O", "CO2", "NaCl"},
		CorrectAnswer: "H2O",
		Explanation:   "A water molecule consists of two hydrogen atoms bonded to one oxygen atom.",
	},

	// general_knowledge / medium
	{
		ID: "bank-gen-med-01", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyMedium,
		Text:          "Which organization publishes the Human Development Index?",
		Options:       []string{"World Bank", "United Nations Development Programme", "International Monetary Fund", "World Trade Organization"},
		CorrectAnswer: "United Nations Development Programme",
		Explanation:   "The UNDP has published the HDI, combining life expectancy, education and income, since 1990.",
	},
	{
		ID: "bank-gen-med-02", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyMedium,
		Text:          "The Renaissance began in which country?",
		Options:       []string{"France", "Italy", "Spain", "England"},
		CorrectAnswer: "Italy",
		Explanation:   "The movement emerged in 14th-century Italian city-states such as Florence before spreading across Europe.",
	},
	{
		ID: "bank-gen-med-03", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyMedium,
		Text:          "What does GDP measure?",
		Options:       []string{"A nation's total debt", "The market value of goods and services produced", "Average personal savings", "Government tax revenue"},
		CorrectAnswer: "The market value of goods and services produced",
		Explanation:   "Gross domestic product totals the value of final goods and services produced within a country over a period.",
	},

	// general_knowledge / hard
	{
		ID: "bank-gen-hard-01", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyHard,
		Text:          "Which treaty established the European Union in its modern form?",
		Options:       []string{"Treaty of Rome", "Treaty of Versailles", "Maastricht Treaty", "Treaty of Lisbon"},
		CorrectAnswer: "Maastricht Treaty",
		Explanation:   "Signed in 1992, the Maastricht Treaty created the European Union and laid the ground for the euro.",
	},
	{
		ID: "bank-gen-hard-02", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyHard,
		Text:          "Who proposed the theory of continental drift?",
		Options:       []string{"Charles Darwin", "Alfred Wegener", "James Hutton", "Niels Bohr"},
		CorrectAnswer: "Alfred Wegener",
		Explanation:   "Wegener argued in 1912 that continents drift across the Earth's surface, a precursor to plate tectonics.",
	},
	{
		ID: "bank-gen-hard-03", Category: domain.CategoryGeneral, Difficulty: domain.DifficultyHard,
		Text:          "The Bretton Woods conference of 1944 led to the creation of which institutions?",
		Options:       []string{"NATO and the UN", "The IMF and the World Bank", "The WTO and OECD", "The EU and ECB"},
		CorrectAnswer: "The IMF and the World Bank",
		Explanation:   "Bretton Woods established the International Monetary Fund and the International Bank for Reconstruction and Development.",
	},
}
