package catalog

import (
	model "github.com/ardra-p/Sustainability-Board-Game/internal/models"
)

// Seuils du jeu. Le niveau 2 se débloque à partir de 100 points.
const (
	MaxLevel            = 2
	LevelTwoMinimumPoints = 100
)

var levelOne = []model.TaskDefinition{
	{ID: 1, Title: "Recycle 3 items", Details: "Find 3 plastic bottles or cans and recycle them.", Level: 1},
	{ID: 2, Title: "Plant a tree", Details: "Plant a sapling near your house or community garden.", Level: 1},
	{ID: 3, Title: "Avoid single-use plastic", Details: "Spend the whole day without using single-use plastic.", Level: 1},
	{ID: 4, Title: "Save water", Details: "Turn off taps when not in use and report water saving.", Level: 1},
	{ID: 5, Title: "Use public transport", Details: "Travel at least once today using bus/train.", Level: 1},
}

var levelTwo = []model.TaskDefinition{
	{ID: 6, Title: "Energy Saving", Details: "Switch off unused lights.", Level: 2},
	{ID: 7, Title: "Reusable Bottle", Details: "Use a reusable bottle instead of plastic.", Level: 2},
	{ID: 8, Title: "Food Waste", Details: "Avoid wasting food today.", Level: 2},
	{ID: 9, Title: "Community Cleanup", Details: "Join or do a cleanup activity.", Level: 2},
	{ID: 10, Title: "Eco-friendly Travel", Details: "Walk or cycle short distances.", Level: 2},
}

// TasksForLevel retourne les tâches d'un niveau, dans l'ordre du catalogue.
// Un niveau inconnu retourne une liste vide. La liste retournée est une copie.
func TasksForLevel(level int) []model.TaskDefinition {
	var src []model.TaskDefinition
	switch level {
	case 1:
		src = levelOne
	case 2:
		src = levelTwo
	default:
		return []model.TaskDefinition{}
	}

	tasks := make([]model.TaskDefinition, len(src))
	copy(tasks, src)
	return tasks
}

// UnlockedLevel dérive le niveau accessible du solde de points courant.
// Monotone croissante : 2 dès 100 points, 1 sinon.
func UnlockedLevel(points int) int {
	if points >= LevelTwoMinimumPoints {
		return 2
	}
	return 1
}

// Find recherche une tâche par id sur tous les niveaux du catalogue.
func Find(taskID int) (model.TaskDefinition, bool) {
	for level := 1; level <= MaxLevel; level++ {
		for _, t := range TasksForLevel(level) {
			if t.ID == taskID {
				return t, true
			}
		}
	}
	return model.TaskDefinition{}, false
}

// FindUnlocked recherche une tâche par id parmi les niveaux débloqués pour un
// solde de points donné. C'est le point de contrôle utilisé à la soumission :
// le paramètre de niveau fourni par le client n'autorise jamais rien.
func FindUnlocked(taskID, points int) (model.TaskDefinition, bool) {
	unlocked := UnlockedLevel(points)
	for level := 1; level <= unlocked; level++ {
		for _, t := range TasksForLevel(level) {
			if t.ID == taskID {
				return t, true
			}
		}
	}
	return model.TaskDefinition{}, false
}
