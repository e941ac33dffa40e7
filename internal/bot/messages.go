package bot

// User-facing message catalogue. Plain-text messages are sent without a
// parse mode; the md-suffixed ones are MarkdownV2 with structural markup
// already escaped where needed.
const (
	msgWelcomeMD = "Benvenuto nel _TPL FVG Monitor_, con cui è possibile consultare gli orari alle fermate " +
		"e i passaggi in tempo reale delle linee gestite da TPL FVG\\.\n\nPuoi ottenere i " +
		"prossimi passaggi usando il *codice identificativo* della fermata o " +
		"cercandola per *nome*, oppure puoi inviare una *posizione*\\. "

	msgNoStopFound        = "Nessuna fermata trovata."
	msgNoPassages         = "Nessun passaggio trovato per questa fermata."
	msgSearchUnavailable  = "Impossibile cercare le fermate in questo momento. Riprova più tardi."
	msgTooManyResults     = "Troppi risultati trovati. Restringi la ricerca inserendo più termini."
	msgLiveLocation       = "Per favore invia una posizione statica, non in tempo reale."
	msgRouteUnavailable   = "Non è stato possibile recuperare informazioni su questa corsa. Verifica che la corsa non sia terminata e riprova."
	msgFavoriteNameRules  = "Usa almeno due caratteri alfanumerici come nome per una fermata preferita."
	msgFavoriteNotSaved   = "Fermata non inserita tra i preferiti."
	msgNoFavorites        = "Nessuna fermata preferita."
	msgNoRecentsMD        = "Nessuna fermata recente\\."
	msgZonesIntroMD       = "Scegli una *zona* per aggiungerla o rimuoverla dai filtri di ricerca\\. Quando cerchi fermate " +
		"e linee vedrai solo risultati nelle zone che hai selezionato " +
		"\\(o in tutte se non ne selezioni alcuna\\)\\.\n"
	msgZoneAddedMD   = "Zona aggiunta\\.\n"
	msgZoneRemovedMD = "Zona rimossa\\.\n"
)

// Inline button labels.
const (
	btnAddFavorite    = "❤️ Aggiungi fermata ai preferiti"
	btnRemoveFavorite = "💔 Rimuovi fermata dai preferiti"
	btnShowRoute      = "👉 Mostra percorso della corsa"
	btnRouteCancel    = "👇 Scegli una linea o premi qui per annullare"
)
