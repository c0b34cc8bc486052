package vehicle

import (
	"github.com/osse101/GameVault_Go/internal/utils"
)

// generatePlate returns a random plate such as "QKD482"
func generatePlate() string {
	return utils.RandomString(plateLetters, 3) + utils.RandomString(plateDigits, 3)
}
