package i18n

type Language string

const (
	Italian Language = "it"
	English Language = "en"
)

var currentLang = English

type Messages struct {
	// General
	AppName string
	Loading string
	Error   string
	Yes     string
	No      string
	None    string
	Notes   string
	Help    string
	Exit    string

	// Routes
	HomeTitle     string
	ArchivedTitle string
	AddTitle      string
	DetailTitle   string
	LoginTitle    string
	RegisterTitle string
	NotFoundTitle string
	NotFoundBody  string
	EmptyNotes    string
	EmptyArchived string
	EmptySearch   string

	// Forms
	EmailLabel           string
	PasswordLabel        string
	ConfirmPasswordLabel string
	NameLabel            string
	TitleLabel           string
	BodyLabel            string
	SearchPlaceholder    string
	TitlePlaceholder     string
	BodyPlaceholder      string
	LoginHint            string
	RegisterHint         string
	AddHint              string

	// Metadata
	CreatedAt  string
	Archived   string
	Active     string
	LoggedInAs string

	// Dialogs
	DeleteNote    string
	DeleteConfirm string

	// Notifications
	GenericError       string
	LoginError         string
	LoginSuccess       string
	LogoutSuccess      string
	RegisterSuccess    string
	RegisterError      string
	FieldsRequired     string
	PasswordTooShort   string
	PasswordMismatch   string
	TitleRequired      string
	FetchNotesError    string
	FetchArchivedError string
	NoteAdded          string
	AddNoteError       string
	NoteDeleted        string
	DeleteNoteError    string
	NoteArchived       string
	ArchiveNoteError   string
	NoteUnarchived     string
	UnarchiveNoteError string
	StorageError       string

	// Keys descriptions (short)
	KeyUp        string
	KeyDown      string
	KeyOpen      string
	KeyBack      string
	KeySubmit    string
	KeyNextField string
	KeyNew       string
	KeyDelete    string
	KeyArchive   string
	KeySearch    string
	KeyHome      string
	KeyArchived  string
	KeyRefresh   string
	KeyLogout    string
	KeyRegister  string
	KeyQuit      string
	KeyHelp      string

	// Prompts
	NamePrompt            string
	EmailPrompt           string
	PasswordPrompt        string
	ConfirmPasswordPrompt string
	NotLoggedIn           string
}

var translations = map[Language]Messages{
	Italian: {
		// General
		AppName: "notely",
		Loading: "Caricamento...",
		Error:   "Errore",
		Yes:     "Sì",
		No:      "No",
		None:    "nessuno",
		Notes:   "note",
		Help:    "Aiuto",
		Exit:    "Esci",

		// Routes
		HomeTitle:     "Note attive",
		ArchivedTitle: "Note archiviate",
		AddTitle:      "Nuova nota",
		DetailTitle:   "Dettaglio nota",
		LoginTitle:    "Accedi",
		RegisterTitle: "Registrati",
		NotFoundTitle: "404",
		NotFoundBody:  "Pagina non trovata",
		EmptyNotes:    "Nessuna nota attiva",
		EmptyArchived: "Nessuna nota archiviata",
		EmptySearch:   "Nessuna nota corrisponde a '%s'",

		// Forms
		EmailLabel:           "Email",
		PasswordLabel:        "Password",
		ConfirmPasswordLabel: "Conferma password",
		NameLabel:            "Nome",
		TitleLabel:           "Titolo",
		BodyLabel:            "Testo",
		SearchPlaceholder:    "Cerca per titolo...",
		TitlePlaceholder:     "Titolo nota...",
		BodyPlaceholder:      "Scrivi qui...",
		LoginHint:            "[Enter] Accedi  [Ctrl+R] Registrati",
		RegisterHint:         "[Enter] Registrati  [Esc] Indietro",
		AddHint:              "[Ctrl+S] Salva  [Esc] Annulla",

		// Metadata
		CreatedAt:  "Creata:",
		Archived:   "Archiviata",
		Active:     "Attiva",
		LoggedInAs: "Utente:",

		// Dialogs
		DeleteNote:    "Elimina nota",
		DeleteConfirm: "Eliminare '%s'?",

		// Notifications
		GenericError:       "Qualcosa è andato storto, controlla la connessione",
		LoginError:         "Email o password non validi",
		LoginSuccess:       "Bentornato, %s",
		LogoutSuccess:      "Disconnesso",
		RegisterSuccess:    "Account creato, ora puoi accedere",
		RegisterError:      "Registrazione non riuscita",
		FieldsRequired:     "Nome, email e password sono obbligatori",
		PasswordTooShort:   "La password deve avere almeno %d caratteri",
		PasswordMismatch:   "Le password non coincidono",
		TitleRequired:      "Il titolo è obbligatorio",
		FetchNotesError:    "Errore nel caricamento delle note",
		FetchArchivedError: "Errore nel caricamento delle note archiviate",
		NoteAdded:          "Nota aggiunta",
		AddNoteError:       "Errore nell'aggiunta della nota",
		NoteDeleted:        "Nota eliminata",
		DeleteNoteError:    "Errore nell'eliminazione della nota",
		NoteArchived:       "Nota archiviata",
		ArchiveNoteError:   "Errore nell'archiviazione della nota",
		NoteUnarchived:     "Nota ripristinata",
		UnarchiveNoteError: "Errore nel ripristino della nota",
		StorageError:       "Impossibile salvare la sessione",

		// Keys descriptions (short)
		KeyUp:        "su",
		KeyDown:      "giù",
		KeyOpen:      "apri",
		KeyBack:      "indietro",
		KeySubmit:    "conferma",
		KeyNextField: "campo succ.",
		KeyNew:       "nuova",
		KeyDelete:    "elimina",
		KeyArchive:   "archivia",
		KeySearch:    "cerca",
		KeyHome:      "home",
		KeyArchived:  "archivio",
		KeyRefresh:   "aggiorna",
		KeyLogout:    "esci",
		KeyRegister:  "registrati",
		KeyQuit:      "chiudi",
		KeyHelp:      "aiuto",

		// Prompts
		NamePrompt:            "Nome: ",
		EmailPrompt:           "Email: ",
		PasswordPrompt:        "Password: ",
		ConfirmPasswordPrompt: "Conferma password: ",
		NotLoggedIn:           "Accesso non effettuato, esegui 'notely login'",
	},

	English: {
		// General
		AppName: "notely",
		Loading: "Loading...",
		Error:   "Error",
		Yes:     "Yes",
		No:      "No",
		None:    "none",
		Notes:   "notes",
		Help:    "Help",
		Exit:    "Exit",

		// Routes
		HomeTitle:     "Active notes",
		ArchivedTitle: "Archived notes",
		AddTitle:      "New note",
		DetailTitle:   "Note",
		LoginTitle:    "Login",
		RegisterTitle: "Register",
		NotFoundTitle: "404",
		NotFoundBody:  "Page not found",
		EmptyNotes:    "No active notes",
		EmptyArchived: "No archived notes",
		EmptySearch:   "No notes match '%s'",

		// Forms
		EmailLabel:           "Email",
		PasswordLabel:        "Password",
		ConfirmPasswordLabel: "Confirm password",
		NameLabel:            "Name",
		TitleLabel:           "Title",
		BodyLabel:            "Body",
		SearchPlaceholder:    "Search by title...",
		TitlePlaceholder:     "Note title...",
		BodyPlaceholder:      "Write here...",
		LoginHint:            "[Enter] Login  [Ctrl+R] Register",
		RegisterHint:         "[Enter] Register  [Esc] Back",
		AddHint:              "[Ctrl+S] Save  [Esc] Cancel",

		// Metadata
		CreatedAt:  "Created:",
		Archived:   "Archived",
		Active:     "Active",
		LoggedInAs: "User:",

		// Dialogs
		DeleteNote:    "Delete Note",
		DeleteConfirm: "Delete '%s'?",

		// Notifications
		GenericError:       "Something went wrong, check your connection",
		LoginError:         "Invalid email or password",
		LoginSuccess:       "Welcome back, %s",
		LogoutSuccess:      "Logged out",
		RegisterSuccess:    "Account created, you can log in now",
		RegisterError:      "Registration failed",
		FieldsRequired:     "Name, email and password are required",
		PasswordTooShort:   "Password must be at least %d characters",
		PasswordMismatch:   "Passwords do not match",
		TitleRequired:      "Title is required",
		FetchNotesError:    "Error fetching notes",
		FetchArchivedError: "Error fetching archived notes",
		NoteAdded:          "Note added successfully",
		AddNoteError:       "Error adding note",
		NoteDeleted:        "Note deleted successfully",
		DeleteNoteError:    "Error deleting note",
		NoteArchived:       "Note archived successfully",
		ArchiveNoteError:   "Error archiving note",
		NoteUnarchived:     "Note unarchived successfully",
		UnarchiveNoteError: "Error unarchiving note",
		StorageError:       "Could not save the session",

		// Keys descriptions (short)
		KeyUp:        "up",
		KeyDown:      "down",
		KeyOpen:      "open",
		KeyBack:      "back",
		KeySubmit:    "submit",
		KeyNextField: "next field",
		KeyNew:       "new note",
		KeyDelete:    "delete",
		KeyArchive:   "archive",
		KeySearch:    "search",
		KeyHome:      "home",
		KeyArchived:  "archived",
		KeyRefresh:   "refresh",
		KeyLogout:    "logout",
		KeyRegister:  "register",
		KeyQuit:      "quit",
		KeyHelp:      "help",

		// Prompts
		NamePrompt:            "Name: ",
		EmailPrompt:           "Email: ",
		PasswordPrompt:        "Password: ",
		ConfirmPasswordPrompt: "Confirm password: ",
		NotLoggedIn:           "Not logged in, run 'notely login'",
	},
}

func SetLanguage(lang Language) {
	if _, ok := translations[lang]; ok {
		currentLang = lang
	}
}

func GetLanguage() Language {
	return currentLang
}

func T() Messages {
	return translations[currentLang]
}
